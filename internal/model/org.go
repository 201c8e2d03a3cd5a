package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is the tenant boundary: it owns projects and members. The
// invite code is generated once at creation and never rotated.
type Organization struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	InviteCode string             `bson:"inviteCode" json:"inviteCode"`
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateOrgRequest struct {
	Name string `json:"name" binding:"required"`
}

type JoinOrgRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

type ChangeRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}

// OrgResponse is the org detail payload: the organization plus its members.
type OrgResponse struct {
	Organization *Organization `json:"organization"`
	Members      []*User       `json:"members"`
}
