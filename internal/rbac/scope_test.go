package rbac

import "testing"

func TestCanAssignRole_SuperAdmin(t *testing.T) {
	// No tenant selected: only superadmin accounts.
	if !CanAssignRole(RoleSuperAdmin, false, RoleSuperAdmin) {
		t.Fatalf("superadmin without tenant should mint superadmins")
	}
	if CanAssignRole(RoleSuperAdmin, false, RoleUser) || CanAssignRole(RoleSuperAdmin, false, RoleCompanyAdmin) {
		t.Fatalf("superadmin without tenant must not create tenant-bound accounts")
	}

	// Tenant selected: tenant-bound accounts only, never another superadmin.
	if !CanAssignRole(RoleSuperAdmin, true, RoleUser) || !CanAssignRole(RoleSuperAdmin, true, RoleCompanyAdmin) {
		t.Fatalf("superadmin with tenant should create user/company_admin")
	}
	if CanAssignRole(RoleSuperAdmin, true, RoleSuperAdmin) {
		t.Fatalf("superadmin with tenant must not create superadmins")
	}
}

func TestCanAssignRole_CompanyAdminAndUser(t *testing.T) {
	if !CanAssignRole(RoleCompanyAdmin, true, RoleUser) {
		t.Fatalf("company_admin should create plain users")
	}
	if CanAssignRole(RoleCompanyAdmin, true, RoleCompanyAdmin) || CanAssignRole(RoleCompanyAdmin, true, RoleSuperAdmin) {
		t.Fatalf("company_admin must not create admins")
	}
	for _, target := range []Role{RoleUser, RoleCompanyAdmin, RoleSuperAdmin} {
		if CanAssignRole(RoleUser, true, target) {
			t.Fatalf("plain user has no management actions")
		}
	}
}

func TestCanChangeRole_Matrix(t *testing.T) {
	cases := []struct {
		actor, current, next Role
		want                 bool
	}{
		// no edit path produces a superadmin
		{RoleSuperAdmin, RoleUser, RoleSuperAdmin, false},
		{RoleCompanyAdmin, RoleUser, RoleSuperAdmin, false},

		{RoleSuperAdmin, RoleUser, RoleCompanyAdmin, true},
		{RoleSuperAdmin, RoleCompanyAdmin, RoleUser, true},

		// promotion allowed, demotion explicitly rejected
		{RoleCompanyAdmin, RoleUser, RoleCompanyAdmin, true},
		{RoleCompanyAdmin, RoleCompanyAdmin, RoleUser, false},
		{RoleCompanyAdmin, RoleCompanyAdmin, RoleCompanyAdmin, true},
		{RoleCompanyAdmin, RoleSuperAdmin, RoleUser, false},

		{RoleUser, RoleUser, RoleCompanyAdmin, false},
	}
	for _, tc := range cases {
		if got := CanChangeRole(tc.actor, tc.current, tc.next); got != tc.want {
			t.Fatalf("CanChangeRole(%s, %s->%s) = %v, want %v", tc.actor, tc.current, tc.next, got, tc.want)
		}
	}
}

func TestCanDeleteAccount(t *testing.T) {
	if !CanDeleteAccount(RoleCompanyAdmin, RoleUser) {
		t.Fatalf("company_admin should delete plain users")
	}
	if CanDeleteAccount(RoleCompanyAdmin, RoleCompanyAdmin) {
		t.Fatalf("company_admin must not delete another admin")
	}
	if CanDeleteAccount(RoleUser, RoleUser) {
		t.Fatalf("plain user has no delete action")
	}
	if !CanDeleteAccount(RoleSuperAdmin, RoleCompanyAdmin) {
		t.Fatalf("superadmin manages tenant admins")
	}
}
