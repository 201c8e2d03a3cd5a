package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "Active"
	ProjectArchived ProjectStatus = "Archived"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	return s == ProjectActive || s == ProjectArchived
}

// Project is a container for tickets within one organization. It is visible
// and mutable only to users of the same organization.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	OrgID       primitive.ObjectID `bson:"orgId" json:"orgId"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Status      ProjectStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GetID implements generic.Entity.
func (p *Project) GetID() primitive.ObjectID { return p.ID }

// SetID implements generic.Entity.
func (p *Project) SetID(id primitive.ObjectID) { p.ID = id }

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest is a partial patch: empty fields are left untouched.
type UpdateProjectRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
}
