// Package policy is the single place where role and ownership rules live.
// Two distinct ticket tiers exist on purpose: the broad edit tier includes a
// designer who is assigned to the ticket, the structural content tier never
// does. Collapsing them would either lock designers out of their own work
// or let them restructure checklists they only execute.
package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/internal/model"
)

// managerial reports whether the role may manage projects and tickets.
func managerial(role model.Role) bool {
	return role == model.RoleAdmin || role == model.RoleManager
}

// CanManageProjects gates project create/update and ticket creation.
func CanManageProjects(role model.Role) bool {
	return managerial(role)
}

// CanDeleteTicket gates ticket deletion.
func CanDeleteTicket(role model.Role) bool {
	return role == model.RoleAdmin
}

// CanManageMembers gates role changes within an organization.
func CanManageMembers(role model.Role) bool {
	return role == model.RoleAdmin
}

// CanEditTicket is the broad tier: field and status updates and todo
// completion toggles. Designers qualify only on tickets assigned to them.
func CanEditTicket(caller model.Caller, ticket *model.Ticket) bool {
	if managerial(caller.Role) {
		return true
	}
	if caller.Role == model.RoleDesigner {
		return !ticket.AssigneeID.IsZero() && ticket.AssigneeID == caller.ID
	}
	return false
}

// CanModifyTicketContent is the structural tier: adding or removing todos
// and attachments. Assignment does not widen it.
func CanModifyTicketContent(caller model.Caller) bool {
	return managerial(caller.Role)
}

// SameOrg reports whether the caller belongs to the given organization.
// Callers without an organization never match.
func SameOrg(caller model.Caller, orgID primitive.ObjectID) bool {
	return !caller.OrgID.IsZero() && caller.OrgID == orgID
}
