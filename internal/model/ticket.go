package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStatus is the workflow state of a ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketInProgress TicketStatus = "InProgress"
	TicketReview     TicketStatus = "Review"
	TicketDone       TicketStatus = "Done"
)

// Valid reports whether s is a known ticket status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketReview, TicketDone:
		return true
	}
	return false
}

// Todo is a checklist line item embedded in a ticket. Each todo carries a
// generated id so toggle/delete cannot target the wrong item after a
// sibling is removed; display order lives in Position, kept dense.
type Todo struct {
	ID          string `bson:"id" json:"id"`
	Text        string `bson:"text" json:"text"`
	IsCompleted bool   `bson:"isCompleted" json:"isCompleted"`
	Position    int    `bson:"position" json:"position"`
}

// Attachment is file metadata embedded in a ticket. The bytes live in the
// blob store under StoredAt; the metadata is not mutable after upload.
type Attachment struct {
	ID          string             `bson:"id" json:"id"`
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	StoredAt    string             `bson:"storedAt" json:"-"`
	UploadedBy  primitive.ObjectID `bson:"uploadedBy" json:"uploadedBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Ticket is a unit of work: status, optional assignee, checklist and
// attachments. OrgID is denormalized from the owning project at creation so
// every operation verifies tenant scope with a single read.
type Ticket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      TicketStatus       `bson:"status" json:"status"`
	ProjectID   primitive.ObjectID `bson:"projectId" json:"projectId"`
	OrgID       primitive.ObjectID `bson:"orgId" json:"orgId"`
	AssigneeID  primitive.ObjectID `bson:"assigneeId,omitempty" json:"assigneeId,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Todos       []Todo             `bson:"todos" json:"todos"`
	Attachments []Attachment       `bson:"attachments" json:"attachments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GetID implements generic.Entity.
func (t *Ticket) GetID() primitive.ObjectID { return t.ID }

// SetID implements generic.Entity.
func (t *Ticket) SetID(id primitive.ObjectID) { t.ID = id }

// TodoByID returns the embedded todo with the given id, or nil.
func (t *Ticket) TodoByID(id string) *Todo {
	for i := range t.Todos {
		if t.Todos[i].ID == id {
			return &t.Todos[i]
		}
	}
	return nil
}

// AttachmentByID returns the embedded attachment with the given id, or nil.
func (t *Ticket) AttachmentByID(id string) *Attachment {
	for i := range t.Attachments {
		if t.Attachments[i].ID == id {
			return &t.Attachments[i]
		}
	}
	return nil
}

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId" binding:"required"`
	AssigneeID  string `json:"assigneeId"`
}

// UpdateTicketRequest is a partial patch: empty fields are left untouched.
// AssigneeID accepts the literal "none" to clear the assignment.
type UpdateTicketRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TicketStatus `json:"status"`
	AssigneeID  string       `json:"assigneeId"`
}

type AddTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

type BulkAddTodosRequest struct {
	Items []string `json:"items" binding:"required"`
}

type SuggestTodosRequest struct {
	Prompt string `json:"prompt"`
}
