package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskboard/internal/model"
	"taskboard/pkg/generic"
)

// ITicketRepository defines ticket persistence. Todos and attachments are
// embedded in the ticket document, so every mutation here is a single
// per-document update; Mongo's document atomicity is the only coordination.
type ITicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Ticket, error)
	FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]*model.Ticket, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	PushTodos(ctx context.Context, id primitive.ObjectID, todos []model.Todo) error
	SetTodoCompleted(ctx context.Context, id primitive.ObjectID, todoID string, completed bool) error
	SetTodos(ctx context.Context, id primitive.ObjectID, todos []model.Todo) error
	PushAttachment(ctx context.Context, id primitive.ObjectID, att model.Attachment) error
	PullAttachment(ctx context.Context, id primitive.ObjectID, attachmentID string) error
}

// TicketRepository implements ticket persistence on top of the generic
// Mongo base repository.
type TicketRepository struct {
	*generic.MongoBaseRepository[*model.Ticket]
}

func NewTicketRepository(db *mongo.Database) ITicketRepository {
	return &TicketRepository{
		MongoBaseRepository: generic.NewBaseRepository[*model.Ticket](db.Collection("tickets")),
	}
}

func (r *TicketRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Ticket, error) {
	return r.GetByID(ctx, id)
}

// FindByProject returns the project's tickets, most recently updated first.
func (r *TicketRepository) FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]*model.Ticket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	return r.Find(ctx, bson.M{"projectId": projectID}, opts)
}

// UpdateFields applies a partial $set and touches updatedAt.
func (r *TicketRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	_, err := r.Collection.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// PushTodos appends todos in order as one mutation.
func (r *TicketRepository) PushTodos(ctx context.Context, id primitive.ObjectID, todos []model.Todo) error {
	_, err := r.Collection.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"todos": bson.M{"$each": todos}},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}

// SetTodoCompleted flips the completion flag of the todo with the given id.
func (r *TicketRepository) SetTodoCompleted(ctx context.Context, id primitive.ObjectID, todoID string, completed bool) error {
	_, err := r.Collection.UpdateByID(ctx, id,
		bson.M{"$set": bson.M{
			"todos.$[t].isCompleted": completed,
			"updatedAt":              time.Now(),
		}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"t.id": todoID}},
		}),
	)
	return err
}

// SetTodos replaces the whole checklist; used after deletes so positions
// stay dense.
func (r *TicketRepository) SetTodos(ctx context.Context, id primitive.ObjectID, todos []model.Todo) error {
	_, err := r.Collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"todos":     todos,
		"updatedAt": time.Now(),
	}})
	return err
}

func (r *TicketRepository) PushAttachment(ctx context.Context, id primitive.ObjectID, att model.Attachment) error {
	_, err := r.Collection.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"attachments": att},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}

func (r *TicketRepository) PullAttachment(ctx context.Context, id primitive.ObjectID, attachmentID string) error {
	_, err := r.Collection.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"attachments": bson.M{"id": attachmentID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}
