// Package access decides whether a caller may act on a ticket. Role
// capabilities come from the casbin enforcer; identity matching is done here.
package access

import (
	"fmt"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/permission"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

// PolicyEnforcer is satisfied by *permission.Enforcer.
type PolicyEnforcer interface {
	Enforce(role string, resource string, action string) (bool, error)
}

type Gate struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewGate(enforcer PolicyEnforcer, logger logger.Interface) *Gate {
	return &Gate{
		enforcer: enforcer,
		logger:   logger,
	}
}

// hasCapability is false for anonymous callers without consulting casbin.
func (g *Gate) hasCapability(auth authorization.AuthContext, action string) (bool, error) {
	if !auth.IsAuthenticated {
		return false, nil
	}
	ok, err := g.enforcer.Enforce(auth.Role.String(), permission.ResourceTicket, action)
	if err != nil {
		g.logger.Errorw("permission check failed", "role", auth.Role, "action", action, "error", err)
		return false, fmt.Errorf("failed to check permission: %w", err)
	}
	return ok, nil
}

func (g *Gate) require(auth authorization.AuthContext, action string) error {
	ok, err := g.hasCapability(auth, action)
	if err != nil {
		return err
	}
	if !ok {
		g.logger.Warnw("access denied", "user_id", auth.UserID, "role", auth.Role, "action", action)
		return errors.NewForbiddenError("access denied")
	}
	return nil
}

func (g *Gate) ownerOr(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket, action string) error {
	if t.IsOwnedBy(caller) {
		return nil
	}
	ok, err := g.hasCapability(auth, action)
	if err != nil {
		return err
	}
	if !ok {
		g.logger.Warnw("ticket access denied",
			"ticket_id", t.ID(),
			"caller", caller.String(),
			"action", action,
		)
		return errors.NewForbiddenError("you do not have access to this ticket")
	}
	return nil
}

// CanView allows admins and the ticket's owner.
func (g *Gate) CanView(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket) error {
	return g.ownerOr(auth, caller, t, permission.ActionViewAny)
}

// CanRespond follows the same rule as CanView.
func (g *Gate) CanRespond(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket) error {
	return g.ownerOr(auth, caller, t, permission.ActionRespondAny)
}

// CanEdit allows only the owner. Admins get no bypass here.
func (g *Gate) CanEdit(caller vo.OwnerIdentity, t *ticket.Ticket) error {
	if t.IsOwnedBy(caller) {
		return nil
	}
	g.logger.Warnw("ticket edit denied", "ticket_id", t.ID(), "caller", caller.String())
	return errors.NewForbiddenError("only the ticket author can edit it")
}

func (g *Gate) CanListAll(auth authorization.AuthContext) error {
	return g.require(auth, permission.ActionListAll)
}

func (g *Gate) CanChangeStatus(auth authorization.AuthContext) error {
	return g.require(auth, permission.ActionChangeStatus)
}

func (g *Gate) CanViewNewCount(auth authorization.AuthContext) error {
	return g.require(auth, permission.ActionViewNewCount)
}

// IsAdminViewer reports whether a view by this caller counts as an admin
// opening the ticket, which marks it seen.
func (g *Gate) IsAdminViewer(auth authorization.AuthContext) bool {
	ok, err := g.hasCapability(auth, permission.ActionViewAny)
	return err == nil && ok
}
