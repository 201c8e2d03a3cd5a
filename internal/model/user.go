package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the organization-wide role of a user. It is assigned at account
// setup or when joining an organization; only admins change it afterwards.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleDesigner Role = "DESIGNER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDesigner:
		return true
	}
	return false
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // bcrypt hash, never exposed
	Role         Role               `bson:"role" json:"role"`
	OrgID        primitive.ObjectID `bson:"orgId,omitempty" json:"orgId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasOrg reports whether the user has joined an organization yet.
func (u *User) HasOrg() bool {
	return !u.OrgID.IsZero()
}

// Caller is the per-request identity snapshot resolved by the auth
// middleware. Every store operation is scoped and gated against it.
type Caller struct {
	ID    primitive.ObjectID
	OrgID primitive.ObjectID // zero until the user joins an organization
	Role  Role
}

// CallerOf builds the request snapshot for a user.
func CallerOf(u *User) Caller {
	return Caller{ID: u.ID, OrgID: u.OrgID, Role: u.Role}
}

type RegisterRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        Role   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
