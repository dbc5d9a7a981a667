package rbac

import "fmt"

// Role is the closed set of account roles issued by the backend.
// Keep these stable; they are part of the token and RBAC contracts.
type Role string

const (
	RoleSuperAdmin   Role = "superadmin"    // cross-tenant
	RoleCompanyAdmin Role = "company_admin" // single-tenant admin
	RoleUser         Role = "user"          // single-tenant, read-mostly
)

// ParseRole maps a raw token claim to a Role. Anything outside the
// closed set is rejected so policy checks never see an unknown role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func IsSuperAdmin(r Role) bool { return r == RoleSuperAdmin }
