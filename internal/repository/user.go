package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskboard/internal/model"
)

// IUserRepository defines user persistence
type IUserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.User, error)
	SetMembership(ctx context.Context, id, orgID primitive.ObjectID, role model.Role) error
	SetRole(ctx context.Context, id primitive.ObjectID, role model.Role) error
}

// UserRepository implements user persistence
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) IUserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user *model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user *model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "displayName", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"orgId": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetMembership attaches the user to an organization with the given role.
func (r *UserRepository) SetMembership(ctx context.Context, id, orgID primitive.ObjectID, role model.Role) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"orgId":     orgID,
		"role":      role,
		"updatedAt": time.Now(),
	}})
	return err
}

func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role model.Role) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"role":      role,
		"updatedAt": time.Now(),
	}})
	return err
}
