package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

// lockDocument is one advisory lock on a schedule record.
type lockDocument struct {
	ScheduleID int       `bson:"schedule_id"`
	ProductID  int       `bson:"product_id"`
	Owner      string    `bson:"owner"`
	AcquiredAt time.Time `bson:"acquired_at"`
}

// LockRepository stores advisory locks on shipment schedule records. Batch
// mutations consult it to exclude records another workflow is working on.
type LockRepository struct {
	collection *mongo.Collection
}

// NewLockRepository creates a new lock repository.
func NewLockRepository(db *MongoDB) *LockRepository {
	return &LockRepository{
		collection: db.Locks,
	}
}

// Acquire takes an advisory lock on the schedule for the given owner. The
// unique index on schedule_id turns a concurrent second acquire into a
// duplicate-key error.
func (r *LockRepository) Acquire(ctx context.Context, scheduleID model.ShipmentScheduleID, productID model.ProductID, owner string) error {
	_, err := r.collection.InsertOne(ctx, lockDocument{
		ScheduleID: int(scheduleID),
		ProductID:  int(productID),
		Owner:      owner,
		AcquiredAt: time.Now().UTC(),
	})
	return err
}

// Release drops the owner's lock on the schedule. Releasing a lock that does
// not exist is a no-op.
func (r *LockRepository) Release(ctx context.Context, scheduleID model.ShipmentScheduleID, owner string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{
		"schedule_id": int(scheduleID),
		"owner":       owner,
	})
	return err
}

// LockedScheduleIDs returns the ids of all schedules of the product that are
// currently under an advisory lock.
func (r *LockRepository) LockedScheduleIDs(ctx context.Context, productID model.ProductID) ([]model.ShipmentScheduleID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"product_id": int(productID)})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []lockDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]model.ShipmentScheduleID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, model.ShipmentScheduleID(doc.ScheduleID))
	}
	return ids, nil
}
