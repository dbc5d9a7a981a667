package rbac

// Tenant-scoping decision tables for account management.
//
// These mirror what the backend enforces so the gateway can reject
// impossible transitions before any network call. They are advisory for
// UX; the backend must independently enforce the same matrix.

// CanAssignRole reports whether actor may create an account with the
// target role. A superadmin operating without a selected tenant can only
// mint other superadmins; with a tenant selected it creates tenant-bound
// accounts (user or company_admin), never another superadmin. A
// company_admin only ever creates plain users.
func CanAssignRole(actor Role, tenantSelected bool, target Role) bool {
	switch actor {
	case RoleSuperAdmin:
		if !tenantSelected {
			return target == RoleSuperAdmin
		}
		return target == RoleUser || target == RoleCompanyAdmin
	case RoleCompanyAdmin:
		return target == RoleUser
	default:
		return false
	}
}

// CanChangeRole reports whether actor may move an existing account from
// current to next. No edit path may produce a superadmin. A
// company_admin may promote a user to company_admin but must never
// demote an existing company_admin back to user.
func CanChangeRole(actor, current, next Role) bool {
	if next == RoleSuperAdmin {
		return false
	}
	switch actor {
	case RoleSuperAdmin:
		return true
	case RoleCompanyAdmin:
		switch current {
		case RoleUser:
			return true
		case RoleCompanyAdmin:
			// demotion is explicitly rejected here and by the backend
			return next != RoleUser
		default:
			return false
		}
	default:
		return false
	}
}

// CanDeleteAccount reports whether actor may delete an account holding
// the target role. company_admin may only remove plain users.
func CanDeleteAccount(actor, target Role) bool {
	switch actor {
	case RoleSuperAdmin:
		return true
	case RoleCompanyAdmin:
		return target == RoleUser
	default:
		return false
	}
}
