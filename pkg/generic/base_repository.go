package generic

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository Interface
type BaseRepository[T Entity] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id primitive.ObjectID) (T, error)
	Replace(ctx context.Context, entity T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error)
}

// MongoBaseRepository Implementation
type MongoBaseRepository[T Entity] struct {
	Collection *mongo.Collection
}

func NewBaseRepository[T Entity](collection *mongo.Collection) *MongoBaseRepository[T] {
	return &MongoBaseRepository[T]{Collection: collection}
}

// Create inserts the entity under a freshly generated id.
func (r *MongoBaseRepository[T]) Create(ctx context.Context, entity T) error {
	entity.SetID(primitive.NewObjectID())
	_, err := r.Collection.InsertOne(ctx, entity)
	return err
}

// GetByID returns the zero value and no error when the document is missing;
// callers decide whether that is a NotFound condition.
func (r *MongoBaseRepository[T]) GetByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	var entity T
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entity)
	if err == mongo.ErrNoDocuments {
		var zero T
		return zero, nil
	}
	return entity, err
}

// Replace performs a full-document replace keyed by the entity id.
func (r *MongoBaseRepository[T]) Replace(ctx context.Context, entity T) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": entity.GetID()}, entity)
	return err
}

// Delete removes the document with the given id.
func (r *MongoBaseRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Find returns all documents matching the filter.
func (r *MongoBaseRepository[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []T
	if err := cursor.All(ctx, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}
