package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed_Tiering(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"employee uploads own documents", RoleEmployee, ResourceDocument, ActionCreate, true},
		{"employee cannot review documents", RoleEmployee, ResourceDocument, ActionReview, false},
		{"employee cannot issue otp", RoleEmployee, ResourceOTP, ActionIssue, false},
		{"hr reviews documents", RoleHR, ResourceDocument, ActionReview, true},
		{"hr inherits employee capabilities", RoleHR, ResourceAttendance, ActionCreate, true},
		{"hr cannot read audit log", RoleHR, ResourceAudit, ActionRead, false},
		{"hr cannot verify documents", RoleHR, ResourceDocument, ActionVerify, false},
		{"admin reads audit log", RoleAdmin, ResourceAudit, ActionRead, true},
		{"admin deletes employees", RoleAdmin, ResourceEmployee, ActionDelete, true},
		{"admin cannot verify documents", RoleAdmin, ResourceDocument, ActionVerify, false},
		{"superadmin verifies documents", RoleSuperAdmin, ResourceDocument, ActionVerify, true},
		{"superadmin inherits admin capabilities", RoleSuperAdmin, ResourceAudit, ActionRead, true},
		{"superadmin inherits hr capabilities", RoleSuperAdmin, ResourceOTP, ActionIssue, true},
		{"unknown role denied", "INTERN", ResourceDocument, ActionRead, false},
		{"empty role denied", "", ResourceDocument, ActionRead, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.Allowed(tc.role, tc.resource, tc.action))
		})
	}
}

func TestAllowed_CaseInsensitiveRole(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	assert.True(t, svc.Allowed("hr", ResourceDocument, ActionReview))
	assert.True(t, svc.Allowed(" super_admin ", ResourceDocument, ActionVerify))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("employee"))
	assert.True(t, IsValidRole("SUPER_ADMIN"))
	assert.False(t, IsValidRole("root"))
}
