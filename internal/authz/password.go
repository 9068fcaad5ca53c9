// Package authz holds the password-change authorization decision.
// The decision is computed once, up front, from caller identity and target,
// so the precedence between the admin and self-service paths lives in
// exactly one place.
package authz

import "github.com/VanMinhNguyen21/api-web/internal/models"

// Outcome tags the result of a password-change authorization decision.
type Outcome int

const (
	// Denied rejects the request outright.
	Denied Outcome = iota
	// AdminOverride sets the target's password without an old-password check.
	AdminOverride
	// SelfService requires the caller to prove the current password first.
	SelfService
)

func (o Outcome) String() string {
	switch o {
	case AdminOverride:
		return "admin_override"
	case SelfService:
		return "self_service"
	default:
		return "denied"
	}
}

// Caller is the authenticated identity attached to the request.
type Caller struct {
	ID   int64
	Role string
}

// Decision pairs the outcome with the resolved target account id.
// TargetID is meaningful only when Outcome is not Denied.
type Decision struct {
	Outcome  Outcome
	TargetID int64
}

// DecidePasswordChange evaluates, in precedence order:
//
//  1. target named + ADMIN caller        -> AdminOverride on the target
//  2. target named + target is caller    -> SelfService on the target
//  3. target named otherwise             -> Denied
//  4. no target named                    -> SelfService on the caller
//
// An ADMIN naming their own id takes branch 1 and therefore skips the
// old-password check. Existing clients depend on that ordering.
func DecidePasswordChange(caller Caller, targetID *int64) Decision {
	if targetID != nil {
		if caller.Role == models.RoleAdmin {
			return Decision{Outcome: AdminOverride, TargetID: *targetID}
		}
		if *targetID == caller.ID {
			return Decision{Outcome: SelfService, TargetID: *targetID}
		}
		return Decision{Outcome: Denied}
	}
	return Decision{Outcome: SelfService, TargetID: caller.ID}
}
