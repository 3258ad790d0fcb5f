package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sudheer2002-ui/employeedirbackend/models"
)

// EmployeeIDCounter is the counter name used for employee identifiers.
const EmployeeIDCounter = "employeeId"

// SequenceAllocator issues unique, monotonically increasing identifiers from
// a single named counter document. It is the only shared mutable state on the
// mongo backend and is injected into the employee repository rather than
// reached as a global.
type SequenceAllocator struct {
	counters *mongo.Collection
	name     string
}

func NewSequenceAllocator(db *mongo.Database, name string) *SequenceAllocator {
	return &SequenceAllocator{counters: db.Collection("counters"), name: name}
}

// Ensure creates the counter document with value 0 if it does not exist yet.
// An existing counter is never overwritten, so restarting the process keeps
// the issued-id history intact.
func (a *SequenceAllocator) Ensure(ctx context.Context) error {
	err := a.counters.FindOne(ctx, bson.M{"name": a.name}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to look up counter '%s': %w", a.name, err)
	}

	_, err = a.counters.InsertOne(ctx, models.SequenceCounter{Name: a.name, Value: 0})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		// a racing process may have seeded it first; that is fine
		return fmt.Errorf("failed to seed counter '%s': %w", a.name, err)
	}
	return nil
}

// NextID atomically increments the counter and returns the new value. The
// increment and the read-back happen in one server-side operation, so two
// concurrent creations can never receive the same identifier.
func (a *SequenceAllocator) NextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.SequenceCounter
	err := a.counters.FindOneAndUpdate(ctx,
		bson.M{"name": a.name},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter '%s': %w", a.name, err)
	}
	return counter.Value, nil
}

// EnsureIndex makes the counter name unique so check-then-create races cannot
// leave two documents for the same counter.
func (a *SequenceAllocator) EnsureIndex(ctx context.Context) error {
	_, err := a.counters.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("uniq_name").SetUnique(true),
	})
	return err
}
