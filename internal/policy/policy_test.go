package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/internal/model"
)

func TestCanManageProjects(t *testing.T) {
	assert.True(t, CanManageProjects(model.RoleAdmin))
	assert.True(t, CanManageProjects(model.RoleManager))
	assert.False(t, CanManageProjects(model.RoleDesigner))
}

func TestCanDeleteTicket(t *testing.T) {
	assert.True(t, CanDeleteTicket(model.RoleAdmin))
	assert.False(t, CanDeleteTicket(model.RoleManager))
	assert.False(t, CanDeleteTicket(model.RoleDesigner))
}

func TestCanManageMembers(t *testing.T) {
	assert.True(t, CanManageMembers(model.RoleAdmin))
	assert.False(t, CanManageMembers(model.RoleManager))
	assert.False(t, CanManageMembers(model.RoleDesigner))
}

func TestCanEditTicket(t *testing.T) {
	designer := primitive.NewObjectID()
	other := primitive.NewObjectID()

	tests := []struct {
		name     string
		role     model.Role
		callerID primitive.ObjectID
		assignee primitive.ObjectID
		want     bool
	}{
		{"admin always", model.RoleAdmin, other, primitive.NilObjectID, true},
		{"manager always", model.RoleManager, other, primitive.NilObjectID, true},
		{"designer assigned to ticket", model.RoleDesigner, designer, designer, true},
		{"designer assigned to someone else", model.RoleDesigner, designer, other, false},
		{"designer on unassigned ticket", model.RoleDesigner, designer, primitive.NilObjectID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := model.Caller{ID: tt.callerID, Role: tt.role}
			ticket := &model.Ticket{AssigneeID: tt.assignee}
			assert.Equal(t, tt.want, CanEditTicket(caller, ticket))
		})
	}
}

func TestCanModifyTicketContent(t *testing.T) {
	// Assignment never widens the structural tier: an assigned designer may
	// toggle todos but not add or remove them.
	assert.True(t, CanModifyTicketContent(model.Caller{Role: model.RoleAdmin}))
	assert.True(t, CanModifyTicketContent(model.Caller{Role: model.RoleManager}))
	assert.False(t, CanModifyTicketContent(model.Caller{Role: model.RoleDesigner}))
}

func TestSameOrg(t *testing.T) {
	orgID := primitive.NewObjectID()

	assert.True(t, SameOrg(model.Caller{OrgID: orgID}, orgID))
	assert.False(t, SameOrg(model.Caller{OrgID: orgID}, primitive.NewObjectID()))
	// A caller without an organization matches nothing, not even another
	// zero org id.
	assert.False(t, SameOrg(model.Caller{}, primitive.NilObjectID))
}
