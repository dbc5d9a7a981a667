package rbac

import "testing"

func TestIsAllowed_DeniesWithoutRole(t *testing.T) {
	p := DefaultPolicy()

	for _, path := range []string{"/companies", "/cameras", "/unmapped/path", "/"} {
		if p.IsAllowed(path, "") {
			t.Fatalf("expected %q denied without a role", path)
		}
	}
}

func TestIsAllowed_PrefixTable(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		path string
		role Role
		want bool
	}{
		{"/companies", RoleSuperAdmin, true},
		{"/companies", RoleCompanyAdmin, false},
		{"/companies", RoleUser, false},
		{"/companies/7/edit", RoleCompanyAdmin, false},
		{"/users", RoleCompanyAdmin, true},
		{"/users", RoleUser, false},
		{"/cameras", RoleUser, true},
		{"/cameras/42/anything", RoleUser, true},
		{"/settings/notifications", RoleUser, true},
		{"/unmapped/path", RoleUser, true},
		{"/", RoleUser, true},
	}
	for _, tc := range cases {
		if got := p.IsAllowed(tc.path, tc.role); got != tc.want {
			t.Fatalf("IsAllowed(%q, %q) = %v, want %v", tc.path, tc.role, got, tc.want)
		}
	}
}

func TestIsAllowed_SegmentBoundary(t *testing.T) {
	p := NewPolicy([]PolicyEntry{
		{Prefix: "/users", Roles: []Role{RoleSuperAdmin}},
	})

	// "/usersfoo" shares the byte prefix but not the path segment.
	if !p.IsAllowed("/usersfoo", RoleUser) {
		t.Fatalf("expected non-segment prefix to fall through to default-allow")
	}
	if p.IsAllowed("/users/7", RoleUser) {
		t.Fatalf("expected sub-path to match the entry")
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"superadmin", "company_admin", "user"} {
		if _, err := ParseRole(s); err != nil {
			t.Fatalf("ParseRole(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "admin", "SUPERADMIN", "super_admin"} {
		if _, err := ParseRole(s); err == nil {
			t.Fatalf("ParseRole(%q): expected error", s)
		}
	}
}
