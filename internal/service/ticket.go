package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/internal/events"
	"taskboard/internal/model"
	"taskboard/internal/policy"
	"taskboard/internal/repository"
	"taskboard/internal/suggest"
	"taskboard/pkg/storage"
	"taskboard/pkg/util"
)

const (
	maxTicketTitleLength = 200
	maxTodoTextLength    = 500
	maxBulkTodos         = 50
)

// clearAssignee is the sentinel an update request uses to unassign a ticket.
const clearAssignee = "none"

// TicketService handles tickets and their embedded todos and attachments.
// Two capability tiers gate mutations: the broad edit tier (managers plus
// the assigned designer) for fields, status and todo toggles, and the
// structural tier (managers only) for adding or removing todos and
// attachments.
type TicketService struct {
	tickets   repository.ITicketRepository
	projects  repository.IProjectRepository
	users     repository.IUserRepository
	blobs     storage.BlobStore
	suggester suggest.Suggester
	hub       *events.Hub
}

func NewTicketService(
	tickets repository.ITicketRepository,
	projects repository.IProjectRepository,
	users repository.IUserRepository,
	blobs storage.BlobStore,
	suggester suggest.Suggester,
	hub *events.Hub,
) *TicketService {
	return &TicketService{
		tickets:   tickets,
		projects:  projects,
		users:     users,
		blobs:     blobs,
		suggester: suggester,
		hub:       hub,
	}
}

// get loads a ticket and enforces tenant scope. Missing and cross-org
// tickets are indistinguishable to the caller.
func (s *TicketService) get(ctx context.Context, caller model.Caller, id string) (*model.Ticket, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket id: %w", model.ErrValidation)
	}
	ticket, err := s.tickets.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil || !policy.SameOrg(caller, ticket.OrgID) {
		return nil, model.ErrNotFound
	}
	return ticket, nil
}

// Get returns a single ticket, NotFound when missing or cross-org.
func (s *TicketService) Get(ctx context.Context, caller model.Caller, id string) (*model.Ticket, error) {
	return s.get(ctx, caller, id)
}

// List returns the tickets of a project any organization member may read.
func (s *TicketService) List(ctx context.Context, caller model.Caller, projectID string) ([]*model.Ticket, error) {
	objID, err := util.ParseObjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project id: %w", model.ErrValidation)
	}
	project, err := s.projects.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil || !policy.SameOrg(caller, project.OrgID) {
		return nil, model.ErrNotFound
	}

	tickets, err := s.tickets.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	if tickets == nil {
		tickets = []*model.Ticket{}
	}
	return tickets, nil
}

// Create makes a new open ticket in the given project.
func (s *TicketService) Create(ctx context.Context, caller model.Caller, req *model.CreateTicketRequest) (*model.Ticket, error) {
	if !policy.CanManageProjects(caller.Role) {
		return nil, model.ErrForbidden
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("ticket title is required: %w", model.ErrValidation)
	}
	if len(title) > maxTicketTitleLength {
		return nil, fmt.Errorf("ticket title too long: %w", model.ErrValidation)
	}

	projectID, err := util.ParseObjectID(req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project id: %w", model.ErrValidation)
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil || !policy.SameOrg(caller, project.OrgID) {
		return nil, model.ErrNotFound
	}

	assigneeID, err := s.resolveAssignee(ctx, caller, req.AssigneeID)
	if err != nil {
		return nil, err
	}

	ticket := &model.Ticket{
		Title:       title,
		Description: req.Description,
		Status:      model.TicketOpen,
		ProjectID:   project.ID,
		OrgID:       project.OrgID,
		AssigneeID:  assigneeID,
		CreatedBy:   caller.ID,
		Todos:       []model.Todo{},
		Attachments: []model.Attachment{},
	}
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.publish(caller, events.Event{
		Type:      events.TicketCreated,
		ProjectID: project.ID.Hex(),
		TicketID:  ticket.ID.Hex(),
	})
	return ticket, nil
}

// resolveAssignee validates an optional assignee: it must be a member of
// the caller's organization. Empty means unassigned.
func (s *TicketService) resolveAssignee(ctx context.Context, caller model.Caller, assignee string) (primitive.ObjectID, error) {
	if assignee == "" {
		return primitive.NilObjectID, nil
	}
	id, err := util.ParseObjectID(assignee)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid assignee id: %w", model.ErrValidation)
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to load assignee: %w", err)
	}
	if user == nil || !policy.SameOrg(caller, user.OrgID) {
		return primitive.NilObjectID, fmt.Errorf("assignee is not a member of the organization: %w", model.ErrValidation)
	}
	return id, nil
}

// Update applies a partial patch under the broad edit tier.
func (s *TicketService) Update(ctx context.Context, caller model.Caller, id string, req *model.UpdateTicketRequest) (*model.Ticket, error) {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditTicket(caller, ticket) {
		return nil, model.ErrForbidden
	}

	fields := bson.M{}
	if title := strings.TrimSpace(req.Title); title != "" {
		if len(title) > maxTicketTitleLength {
			return nil, fmt.Errorf("ticket title too long: %w", model.ErrValidation)
		}
		fields["title"] = title
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("unknown status %q: %w", req.Status, model.ErrValidation)
		}
		fields["status"] = req.Status
	}
	if req.AssigneeID == clearAssignee {
		fields["assigneeId"] = nil
	} else if req.AssigneeID != "" {
		assigneeID, err := s.resolveAssignee(ctx, caller, req.AssigneeID)
		if err != nil {
			return nil, err
		}
		fields["assigneeId"] = assigneeID
	}

	if err := s.tickets.UpdateFields(ctx, ticket.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	s.publishTicket(caller, events.TicketUpdated, ticket)
	return s.reload(ctx, ticket.ID)
}

// Delete removes a ticket and its stored attachment blobs. Admin only.
func (s *TicketService) Delete(ctx context.Context, caller model.Caller, id string) error {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteTicket(caller.Role) {
		return model.ErrForbidden
	}

	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	// Blob removal is best effort; an orphaned file is not worth failing
	// the delete over.
	if s.blobs != nil {
		for _, att := range ticket.Attachments {
			_ = s.blobs.Remove(att.StoredAt)
		}
	}

	s.publishTicket(caller, events.TicketDeleted, ticket)
	return nil
}

// AddTodo appends one checklist item. Structural tier.
func (s *TicketService) AddTodo(ctx context.Context, caller model.Caller, id, text string) (*model.Ticket, error) {
	return s.appendTodos(ctx, caller, id, []string{text})
}

// BulkAddTodos appends several checklist items as one document mutation, so
// a failure persists nothing and order is preserved. Structural tier.
func (s *TicketService) BulkAddTodos(ctx context.Context, caller model.Caller, id string, texts []string) (*model.Ticket, error) {
	return s.appendTodos(ctx, caller, id, texts)
}

func (s *TicketService) appendTodos(ctx context.Context, caller model.Caller, id string, texts []string) (*model.Ticket, error) {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyTicketContent(caller) {
		return nil, model.ErrForbidden
	}

	todos, err := buildTodos(texts, len(ticket.Todos))
	if err != nil {
		return nil, err
	}

	if err := s.tickets.PushTodos(ctx, ticket.ID, todos); err != nil {
		return nil, fmt.Errorf("failed to append todos: %w", err)
	}

	s.publishTicket(caller, events.TicketUpdated, ticket)
	return s.reload(ctx, ticket.ID)
}

// buildTodos validates texts and assigns ids and dense positions starting
// at the current checklist length.
func buildTodos(texts []string, startPos int) ([]model.Todo, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no todo items given: %w", model.ErrValidation)
	}
	if len(texts) > maxBulkTodos {
		return nil, fmt.Errorf("too many todo items: %w", model.ErrValidation)
	}

	todos := make([]model.Todo, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("todo text is required: %w", model.ErrValidation)
		}
		if len(text) > maxTodoTextLength {
			return nil, fmt.Errorf("todo text too long: %w", model.ErrValidation)
		}
		todos = append(todos, model.Todo{
			ID:       uuid.NewString(),
			Text:     text,
			Position: startPos + len(todos),
		})
	}
	return todos, nil
}

// ToggleTodo flips a checklist item's completion. Broad edit tier, so an
// assigned designer can tick off their own work.
func (s *TicketService) ToggleTodo(ctx context.Context, caller model.Caller, id, todoID string) (*model.Ticket, error) {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditTicket(caller, ticket) {
		return nil, model.ErrForbidden
	}

	todo := ticket.TodoByID(todoID)
	if todo == nil {
		return nil, model.ErrTodoNotFound
	}

	if err := s.tickets.SetTodoCompleted(ctx, ticket.ID, todoID, !todo.IsCompleted); err != nil {
		return nil, fmt.Errorf("failed to toggle todo: %w", err)
	}

	s.publishTicket(caller, events.TicketUpdated, ticket)
	return s.reload(ctx, ticket.ID)
}

// DeleteTodo removes a checklist item and compacts the remaining positions.
// Structural tier. Deleting an id twice fails the second time.
func (s *TicketService) DeleteTodo(ctx context.Context, caller model.Caller, id, todoID string) (*model.Ticket, error) {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyTicketContent(caller) {
		return nil, model.ErrForbidden
	}
	if ticket.TodoByID(todoID) == nil {
		return nil, model.ErrTodoNotFound
	}

	remaining := make([]model.Todo, 0, len(ticket.Todos)-1)
	for _, todo := range ticket.Todos {
		if todo.ID == todoID {
			continue
		}
		todo.Position = len(remaining)
		remaining = append(remaining, todo)
	}

	if err := s.tickets.SetTodos(ctx, ticket.ID, remaining); err != nil {
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}

	s.publishTicket(caller, events.TicketUpdated, ticket)
	return s.reload(ctx, ticket.ID)
}

// SuggestTodos asks the external suggestion service for checklist items and
// appends them in a single mutation. A suggester failure persists nothing.
func (s *TicketService) SuggestTodos(ctx context.Context, caller model.Caller, id, prompt string) (*model.Ticket, error) {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyTicketContent(caller) {
		return nil, model.ErrForbidden
	}
	if s.suggester == nil {
		return nil, fmt.Errorf("no suggestion service configured: %w", model.ErrUpstream)
	}

	texts, err := s.suggester.SuggestTodos(ctx, ticket.Title, ticket.Description, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggestion failed: %v: %w", err, model.ErrUpstream)
	}
	if len(texts) == 0 {
		return ticket, nil
	}

	todos, err := buildTodos(texts, len(ticket.Todos))
	if err != nil {
		return nil, err
	}
	if err := s.tickets.PushTodos(ctx, ticket.ID, todos); err != nil {
		return nil, fmt.Errorf("failed to append suggested todos: %w", err)
	}

	s.publishTicket(caller, events.TicketUpdated, ticket)
	return s.reload(ctx, ticket.ID)
}

// AddAttachment stores the file bytes and appends the metadata record.
// Structural tier.
func (s *TicketService) AddAttachment(ctx context.Context, caller model.Caller, id, fileName, contentType string, r io.Reader) (*model.Attachment, error) {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyTicketContent(caller) {
		return nil, model.ErrForbidden
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, fmt.Errorf("file name is required: %w", model.ErrValidation)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attID := uuid.NewString()
	key := ticket.ID.Hex() + "/" + attID
	size, err := s.blobs.Save(key, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %v: %w", err, model.ErrUpstream)
	}

	att := model.Attachment{
		ID:          attID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		StoredAt:    key,
		UploadedBy:  caller.ID,
		CreatedAt:   time.Now(),
	}
	if err := s.tickets.PushAttachment(ctx, ticket.ID, att); err != nil {
		_ = s.blobs.Remove(key)
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	s.publishTicket(caller, events.TicketUpdated, ticket)
	return &att, nil
}

// OpenAttachment returns the stored bytes and metadata for download. Read
// access follows the same organization rule as viewing the ticket.
func (s *TicketService) OpenAttachment(ctx context.Context, caller model.Caller, id, attachmentID string) (io.ReadCloser, *model.Attachment, error) {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return nil, nil, err
	}
	att := ticket.AttachmentByID(attachmentID)
	if att == nil {
		return nil, nil, model.ErrNotFound
	}
	rc, err := s.blobs.Open(att.StoredAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored file: %v: %w", err, model.ErrUpstream)
	}
	return rc, att, nil
}

// DeleteAttachment removes the metadata record and the stored blob.
// Structural tier.
func (s *TicketService) DeleteAttachment(ctx context.Context, caller model.Caller, id, attachmentID string) error {
	ticket, err := s.get(ctx, caller, id)
	if err != nil {
		return err
	}
	if !policy.CanModifyTicketContent(caller) {
		return model.ErrForbidden
	}
	att := ticket.AttachmentByID(attachmentID)
	if att == nil {
		return model.ErrNotFound
	}

	if err := s.tickets.PullAttachment(ctx, ticket.ID, attachmentID); err != nil {
		return fmt.Errorf("failed to remove attachment: %w", err)
	}
	_ = s.blobs.Remove(att.StoredAt)

	s.publishTicket(caller, events.TicketUpdated, ticket)
	return nil
}

func (s *TicketService) reload(ctx context.Context, id primitive.ObjectID) (*model.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload ticket: %w", err)
	}
	if ticket == nil {
		return nil, model.ErrNotFound
	}
	return ticket, nil
}

func (s *TicketService) publish(caller model.Caller, ev events.Event) {
	if s.hub != nil {
		s.hub.Publish(caller.OrgID, ev)
	}
}

func (s *TicketService) publishTicket(caller model.Caller, eventType string, ticket *model.Ticket) {
	s.publish(caller, events.Event{
		Type:      eventType,
		ProjectID: ticket.ProjectID.Hex(),
		TicketID:  ticket.ID.Hex(),
	})
}
