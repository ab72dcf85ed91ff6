package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

// ScheduleRepository persists shipment schedules in MongoDB.
type ScheduleRepository struct {
	collection *mongo.Collection
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *MongoDB) *ScheduleRepository {
	return &ScheduleRepository{
		collection: db.Schedules,
	}
}

// GetByID returns the schedule with the given id, or ErrNotFound.
func (r *ScheduleRepository) GetByID(ctx context.Context, id model.ShipmentScheduleID) (*model.ShipmentSchedule, error) {
	var doc scheduleDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": int(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("schedule %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return documentToSchedule(&doc)
}

// GetByIDs returns the schedules found for the given ids, keyed by id.
// Missing ids are simply absent from the result.
func (r *ScheduleRepository) GetByIDs(ctx context.Context, ids []model.ShipmentScheduleID) (map[model.ShipmentScheduleID]*model.ShipmentSchedule, error) {
	if len(ids) == 0 {
		return map[model.ShipmentScheduleID]*model.ShipmentSchedule{}, nil
	}

	rawIDs := make([]int, len(ids))
	for i, id := range ids {
		rawIDs[i] = int(id)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": rawIDs}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []scheduleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make(map[model.ShipmentScheduleID]*model.ShipmentSchedule, len(docs))
	for i := range docs {
		sched, err := documentToSchedule(&docs[i])
		if err != nil {
			return nil, err
		}
		result[sched.ID] = sched
	}
	return result, nil
}

// GetByIDsOutOfTrx reads outside any transaction carried by ctx, so the
// result reflects committed state even mid-transaction.
func (r *ScheduleRepository) GetByIDsOutOfTrx(ctx context.Context, ids []model.ShipmentScheduleID) (map[model.ShipmentScheduleID]*model.ShipmentSchedule, error) {
	return r.GetByIDs(withoutSession(ctx), ids)
}

// Save upserts the schedule by id and refreshes its UpdatedAt.
func (r *ScheduleRepository) Save(ctx context.Context, sched *model.ShipmentSchedule) error {
	now := time.Now().UTC()
	if sched.CreatedAt.IsZero() {
		sched.CreatedAt = now
	}
	sched.UpdatedAt = now

	doc := scheduleToDocument(sched)
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// BulkSetCatchUom sets the catch unit on every active, unprocessed schedule
// of the product whose catch unit differs from the target, skipping the
// excluded (externally locked) ids. A zero catchUomID clears the unit.
func (r *ScheduleRepository) BulkSetCatchUom(
	ctx context.Context,
	productID model.ProductID,
	catchUomID model.UomID,
	excludeIDs []model.ShipmentScheduleID,
) (int64, error) {
	filter := bson.M{
		"product_id":   int(productID),
		"active":       true,
		"processed":    false,
		"catch_uom_id": bson.M{"$ne": int(catchUomID)},
	}
	if len(excludeIDs) > 0 {
		rawIDs := make([]int, len(excludeIDs))
		for i, id := range excludeIDs {
			rawIDs[i] = int(id)
		}
		filter["_id"] = bson.M{"$nin": rawIDs}
	}

	update := bson.M{"$set": bson.M{
		"catch_uom_id": int(catchUomID),
		"updated_at":   time.Now().UTC(),
	}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// withoutSession strips the mongo session (and with it the transaction)
// from the context. Values and deadline of the original context are dropped
// together with it; out-of-trx reads are deliberately detached.
func withoutSession(ctx context.Context) context.Context {
	if mongo.SessionFromContext(ctx) == nil {
		return ctx
	}
	return context.Background()
}
