package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sudheer2002-ui/employeedirbackend/models"
)

// EmployeeIndexes enforce the identifier and email uniqueness invariants at
// the collection level.
var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetName("uniq_id").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	},
}

// MongoEmployeeRepository is the document-store variant of the employee
// store. Identifiers come from the injected SequenceAllocator.
type MongoEmployeeRepository struct {
	employees *mongo.Collection
	alloc     *SequenceAllocator
}

func NewMongoEmployeeRepository(db *mongo.Database, alloc *SequenceAllocator) *MongoEmployeeRepository {
	return &MongoEmployeeRepository{employees: db.Collection("employees"), alloc: alloc}
}

// EnsureIndexes creates the unique indexes; call once at startup.
func (r *MongoEmployeeRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.employees.Indexes().CreateMany(ctx, EmployeeIndexes); err != nil {
		return fmt.Errorf("failed to create employee indexes: %w", err)
	}
	return r.alloc.EnsureIndex(ctx)
}

func (r *MongoEmployeeRepository) Create(ctx context.Context, emp *models.Employee) error {
	// if the increment fails, no employee document is written: the id the
	// allocator did not commit to is never used
	id, err := r.alloc.NextID(ctx)
	if err != nil {
		return err
	}
	emp.ID = id
	emp.CreatedAt = time.Now()

	if _, err := r.employees.InsertOne(ctx, emp); err != nil {
		return mapMongoErr(err)
	}
	return nil
}

func (r *MongoEmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	var emp models.Employee
	err := r.employees.FindOne(ctx, bson.M{"id": id}).Decode(&emp)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &emp, nil
}

func (r *MongoEmployeeRepository) ListAll(ctx context.Context) ([]models.Employee, error) {
	cursor, err := r.employees.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *MongoEmployeeRepository) Update(ctx context.Context, id int64, upd models.EmployeeUpdate) error {
	res, err := r.employees.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"name":        upd.Name,
		"email":       upd.Email,
		"mobile":      upd.Mobile,
		"designation": upd.Designation,
		"gender":      upd.Gender,
		"courses":     upd.Courses,
		"imagePath":   upd.ImagePath,
	}})
	if err != nil {
		return mapMongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoEmployeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.employees.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}
