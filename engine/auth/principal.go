// Package auth holds the identity model and the role/plan permission
// matrix enforced in front of every route.
package auth

// Role represents a principal's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Plan represents the tenant's subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanGrowth     Plan = "growth"
	PlanEnterprise Plan = "enterprise"
)

// Principal is the authenticated caller. A nil principal means the
// request is anonymous.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Roles []Role `json:"roles"`
	Plan  Plan   `json:"plan"`
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
