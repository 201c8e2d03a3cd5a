package generic

import "go.mongodb.org/mongo-driver/bson/primitive"

// Entity is the minimal contract a model must satisfy to be stored through
// the base repository.
type Entity interface {
	GetID() primitive.ObjectID
	SetID(primitive.ObjectID)
}
