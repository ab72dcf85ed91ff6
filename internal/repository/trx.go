package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTrxRunner runs functions inside MongoDB transactions with
// join-or-create semantics: a context that already carries a session joins
// that transaction, otherwise a fresh session is opened and committed or
// aborted around fn.
type MongoTrxRunner struct {
	client *mongo.Client
}

// NewMongoTrxRunner creates a transaction runner on the given client.
func NewMongoTrxRunner(client *mongo.Client) *MongoTrxRunner {
	return &MongoTrxRunner{client: client}
}

// RunInTransaction executes fn transactionally. Any error from fn aborts the
// owned transaction; when joining a caller's transaction, the error is
// propagated and the commit/abort decision stays with the caller.
func (r *MongoTrxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
