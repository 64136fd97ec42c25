package permission

import (
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
)

// Resources and actions understood by the access gate.
const (
	ResourceTicket = "ticket"

	ActionListAll      = "list_all"
	ActionChangeStatus = "change_status"
	ActionViewNewCount = "view_new_count"
	ActionViewAny      = "view_any"
	ActionRespondAny   = "respond_any"
)

// DefaultPolicies grants the console capabilities to admins. The plain user
// role has no ticket capabilities beyond what its identity allows.
func DefaultPolicies() [][]string {
	admin := authorization.RoleAdmin.String()
	return [][]string{
		{admin, ResourceTicket, ActionListAll},
		{admin, ResourceTicket, ActionChangeStatus},
		{admin, ResourceTicket, ActionViewNewCount},
		{admin, ResourceTicket, ActionViewAny},
		{admin, ResourceTicket, ActionRespondAny},
	}
}

// SeedDefaultPolicies adds any missing default policy.
func SeedDefaultPolicies(e *Enforcer) error {
	for _, p := range DefaultPolicies() {
		if err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	e.logger.Infow("ticket permissions initialized", "policies", len(DefaultPolicies()))
	return nil
}
