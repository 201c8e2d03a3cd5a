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

// IProjectRepository defines project persistence
type IProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error)
	FindByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.Project, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

// ProjectRepository implements project persistence on top of the generic
// Mongo base repository.
type ProjectRepository struct {
	*generic.MongoBaseRepository[*model.Project]
}

func NewProjectRepository(db *mongo.Database) IProjectRepository {
	return &ProjectRepository{
		MongoBaseRepository: generic.NewBaseRepository[*model.Project](db.Collection("projects")),
	}
}

func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error) {
	return r.GetByID(ctx, id)
}

// FindByOrg returns the organization's projects, most recently updated first.
func (r *ProjectRepository) FindByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	return r.Find(ctx, bson.M{"orgId": orgID}, opts)
}

// UpdateFields applies a partial $set and touches updatedAt.
func (r *ProjectRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	_, err := r.Collection.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}
