package rbac

import "strings"

// PolicyEntry grants a set of roles access to a route-path prefix.
type PolicyEntry struct {
	Prefix string
	Roles  []Role
}

// Policy is the route-prefix access table consulted by the access gate.
//
// Invariants:
// - Entries are fixed at construction; nothing mutates them at request time.
// - Matching is first-entry-wins on exact path or segment-prefix.
// - A path with no matching entry is open to any authenticated role.
type Policy struct {
	entries []PolicyEntry
}

func NewPolicy(entries []PolicyEntry) *Policy {
	out := make([]PolicyEntry, len(entries))
	copy(out, entries)
	return &Policy{entries: out}
}

// DefaultPolicy is the route table for the admin console.
// Company management is superadmin-only; user management is admin-only;
// everything camera-shaped is open to all authenticated roles.
func DefaultPolicy() *Policy {
	return NewPolicy([]PolicyEntry{
		{Prefix: "/companies", Roles: []Role{RoleSuperAdmin}},
		{Prefix: "/users", Roles: []Role{RoleSuperAdmin, RoleCompanyAdmin}},
		{Prefix: "/cameras", Roles: []Role{RoleSuperAdmin, RoleCompanyAdmin, RoleUser}},
		{Prefix: "/anomalies", Roles: []Role{RoleSuperAdmin, RoleCompanyAdmin, RoleUser}},
		{Prefix: "/recordings", Roles: []Role{RoleSuperAdmin, RoleCompanyAdmin, RoleUser}},
		{Prefix: "/ingest", Roles: []Role{RoleSuperAdmin, RoleCompanyAdmin, RoleUser}},
		{Prefix: "/settings/notifications", Roles: []Role{RoleSuperAdmin, RoleCompanyAdmin, RoleUser}},
	})
}

// IsAllowed reports whether role may enter path.
// An empty role (no session) is never allowed. Unlisted paths default to
// allowed for any authenticated role; the backend remains authoritative
// for everything data-touching.
func (p *Policy) IsAllowed(path string, role Role) bool {
	if role == "" {
		return false
	}
	for _, e := range p.entries {
		if path == e.Prefix || strings.HasPrefix(path, e.Prefix+"/") {
			for _, r := range e.Roles {
				if r == role {
					return true
				}
			}
			return false
		}
	}
	return true
}
