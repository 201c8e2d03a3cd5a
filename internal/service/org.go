package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/policy"
	"taskboard/internal/repository"
	"taskboard/pkg/util"
)

const maxOrgNameLength = 120

// OrgService handles organization lifecycle and membership.
type OrgService struct {
	orgs  repository.IOrgRepository
	users repository.IUserRepository
}

func NewOrgService(orgs repository.IOrgRepository, users repository.IUserRepository) *OrgService {
	return &OrgService{orgs: orgs, users: users}
}

// Create makes a new organization owned by the caller, who becomes its
// admin. A user can belong to one organization only.
func (s *OrgService) Create(ctx context.Context, caller model.Caller, name string) (*model.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("organization name is required: %w", model.ErrValidation)
	}
	if len(name) > maxOrgNameLength {
		return nil, fmt.Errorf("organization name too long: %w", model.ErrValidation)
	}
	if !caller.OrgID.IsZero() {
		return nil, fmt.Errorf("already a member of an organization: %w", model.ErrConflict)
	}

	code, err := util.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	org, err := s.orgs.Create(ctx, &model.Organization{
		Name:       name,
		InviteCode: code,
		OwnerID:    caller.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	if err := s.users.SetMembership(ctx, caller.ID, org.ID, model.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to attach owner: %w", err)
	}
	return org, nil
}

// Join attaches the caller to the organization holding the invite code.
// New joiners start as designers; an admin promotes them afterwards.
func (s *OrgService) Join(ctx context.Context, caller model.Caller, inviteCode string) (*model.Organization, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return nil, fmt.Errorf("invite code is required: %w", model.ErrValidation)
	}
	if !caller.OrgID.IsZero() {
		return nil, fmt.Errorf("already a member of an organization: %w", model.ErrConflict)
	}

	org, err := s.orgs.FindByInviteCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if org == nil {
		return nil, model.ErrNotFound
	}

	if err := s.users.SetMembership(ctx, caller.ID, org.ID, model.RoleDesigner); err != nil {
		return nil, fmt.Errorf("failed to join organization: %w", err)
	}
	return org, nil
}

// GetMine returns the caller's organization with its member list.
func (s *OrgService) GetMine(ctx context.Context, caller model.Caller) (*model.OrgResponse, error) {
	if caller.OrgID.IsZero() {
		return nil, model.ErrNotFound
	}
	org, err := s.orgs.FindByID(ctx, caller.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return nil, model.ErrNotFound
	}
	members, err := s.users.FindByOrg(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return &model.OrgResponse{Organization: org, Members: members}, nil
}

// ChangeRole updates another member's role. Admin only, same organization.
func (s *OrgService) ChangeRole(ctx context.Context, caller model.Caller, userID string, role model.Role) (*model.User, error) {
	if !policy.CanManageMembers(caller.Role) {
		return nil, model.ErrForbidden
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, model.ErrValidation)
	}

	id, err := util.ParseObjectID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", model.ErrValidation)
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !policy.SameOrg(caller, user.OrgID) {
		return nil, model.ErrNotFound
	}

	if err := s.users.SetRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}
	user.Role = role
	return user, nil
}
