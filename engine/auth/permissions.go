package auth

// Permission gates one route: the caller needs an allowed role and an
// allowed plan.
type Permission struct {
	ID           string
	AllowedRoles []Role
	AllowedPlans []Plan
}

var allPlans = []Plan{PlanFree, PlanGrowth, PlanEnterprise}

var (
	PermissionTeamCreate           = permission("teamCreate")
	PermissionTeamRead             = permission("teamRead")
	PermissionTeamEdit             = permission("teamEdit")
	PermissionTeamDestroy          = permission("teamDestroy")
	PermissionTeamImport           = permission("teamImport")
	PermissionTeamAutocomplete     = permission("teamAutocomplete")
	PermissionTemplateCreate       = permission("templateCreate")
	PermissionTemplateRead         = permission("templateRead")
	PermissionTemplateEdit         = permission("templateEdit")
	PermissionTemplateDestroy      = permission("templateDestroy")
	PermissionTemplateImport       = permission("templateImport")
	PermissionTemplateAutocomplete = permission("templateAutocomplete")
)

func permission(id string) Permission {
	return Permission{
		ID:           id,
		AllowedRoles: []Role{RoleUser},
		AllowedPlans: allPlans,
	}
}

// Allows reports whether the principal may exercise the permission.
// Admins bypass the role check but still need an allowed plan.
func Allows(p *Principal, perm Permission) bool {
	if p == nil {
		return false
	}
	if !roleAllowed(p, perm) {
		return false
	}
	return planAllowed(p.Plan, perm)
}

func roleAllowed(p *Principal, perm Permission) bool {
	if p.HasRole(RoleAdmin) {
		return true
	}
	for _, role := range perm.AllowedRoles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}

func planAllowed(plan Plan, perm Permission) bool {
	if plan == "" {
		plan = PlanFree
	}
	for _, allowed := range perm.AllowedPlans {
		if allowed == plan {
			return true
		}
	}
	return false
}
