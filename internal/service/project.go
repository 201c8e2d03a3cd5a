package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"taskboard/internal/events"
	"taskboard/internal/model"
	"taskboard/internal/policy"
	"taskboard/internal/repository"
	"taskboard/pkg/util"
)

const maxProjectNameLength = 200

// ProjectService handles project CRUD. Every read and write is scoped to
// the caller's organization; a project in another organization is reported
// as missing, never as forbidden.
type ProjectService struct {
	projects repository.IProjectRepository
	hub      *events.Hub
}

func NewProjectService(projects repository.IProjectRepository, hub *events.Hub) *ProjectService {
	return &ProjectService{projects: projects, hub: hub}
}

// List returns the caller's organization projects, most recently updated
// first. A caller without an organization gets an empty list, not an error.
func (s *ProjectService) List(ctx context.Context, caller model.Caller) ([]*model.Project, error) {
	if caller.OrgID.IsZero() {
		return []*model.Project{}, nil
	}
	projects, err := s.projects.FindByOrg(ctx, caller.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	return projects, nil
}

// Get returns a single project, or NotFound when it is missing or belongs
// to another organization.
func (s *ProjectService) Get(ctx context.Context, caller model.Caller, id string) (*model.Project, error) {
	objID, err := util.ParseObjectID(id)
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
	return project, nil
}

// Create makes a new active project in the caller's organization.
func (s *ProjectService) Create(ctx context.Context, caller model.Caller, req *model.CreateProjectRequest) (*model.Project, error) {
	if !policy.CanManageProjects(caller.Role) {
		return nil, model.ErrForbidden
	}
	if caller.OrgID.IsZero() {
		return nil, fmt.Errorf("join an organization first: %w", model.ErrValidation)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("project name is required: %w", model.ErrValidation)
	}
	if len(name) > maxProjectNameLength {
		return nil, fmt.Errorf("project name too long: %w", model.ErrValidation)
	}

	project := &model.Project{
		Name:        name,
		Description: req.Description,
		OrgID:       caller.OrgID,
		CreatedBy:   caller.ID,
		Status:      model.ProjectActive,
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.publish(caller, events.Event{Type: events.ProjectCreated, ProjectID: project.ID.Hex()})
	return project, nil
}

// Update applies a partial patch: empty fields are left untouched.
func (s *ProjectService) Update(ctx context.Context, caller model.Caller, id string, req *model.UpdateProjectRequest) (*model.Project, error) {
	project, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageProjects(caller.Role) {
		return nil, model.ErrForbidden
	}

	fields := bson.M{}
	if name := strings.TrimSpace(req.Name); name != "" {
		if len(name) > maxProjectNameLength {
			return nil, fmt.Errorf("project name too long: %w", model.ErrValidation)
		}
		fields["name"] = name
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

	if err := s.projects.UpdateFields(ctx, project.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	updated, err := s.projects.FindByID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	s.publish(caller, events.Event{Type: events.ProjectUpdated, ProjectID: project.ID.Hex()})
	return updated, nil
}

func (s *ProjectService) publish(caller model.Caller, ev events.Event) {
	if s.hub != nil {
		s.hub.Publish(caller.OrgID, ev)
	}
}
