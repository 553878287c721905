package rbac

import "strings"

// Role values carried in JWT claims and on the employee row. The set is
// closed: anything else is rejected at parse time.
const (
	RoleEmployee   = "EMPLOYEE"
	RoleHR         = "HR"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Resources and actions used by the capability table and route guards.
const (
	ResourceEmployee       = "employee"
	ResourceDocument       = "document"
	ResourceProfileRequest = "profile_request"
	ResourceAttendance     = "attendance"
	ResourceNotification   = "notification"
	ResourceAudit          = "audit"
	ResourceOTP            = "otp"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionReview  = "review"
	ActionVerify  = "verify"
	ActionIssue   = "issue"
	ActionExport  = "export"
)

func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

// IsValidRole reports whether role belongs to the closed enumeration.
func IsValidRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleEmployee, RoleHR, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsPrivileged reports whether the role sits above plain employees in
// the ordering employee < hr = admin < superAdmin.
func IsPrivileged(role string) bool {
	switch NormalizeRole(role) {
	case RoleHR, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

type capability struct {
	role     string
	resource string
	action   string
}

// capabilities is the full permission table. HR and Admin overlap but
// are not identical: only Admin may read the audit log and delete
// employees, only SuperAdmin may run final document verification.
var capabilities = []capability{
	{RoleEmployee, ResourceDocument, ActionCreate},
	{RoleEmployee, ResourceDocument, ActionRead},
	{RoleEmployee, ResourceProfileRequest, ActionCreate},
	{RoleEmployee, ResourceProfileRequest, ActionRead},
	{RoleEmployee, ResourceAttendance, ActionCreate},
	{RoleEmployee, ResourceAttendance, ActionRead},
	{RoleEmployee, ResourceNotification, ActionRead},
	{RoleEmployee, ResourceNotification, ActionUpdate},
	{RoleEmployee, ResourceOTP, ActionVerify},

	{RoleHR, ResourceEmployee, ActionCreate},
	{RoleHR, ResourceEmployee, ActionRead},
	{RoleHR, ResourceEmployee, ActionReadAll},
	{RoleHR, ResourceEmployee, ActionUpdate},
	{RoleHR, ResourceDocument, ActionReadAll},
	{RoleHR, ResourceDocument, ActionReview},
	{RoleHR, ResourceProfileRequest, ActionReadAll},
	{RoleHR, ResourceProfileRequest, ActionReview},
	{RoleHR, ResourceAttendance, ActionReadAll},
	{RoleHR, ResourceAttendance, ActionUpdate},
	{RoleHR, ResourceAttendance, ActionExport},
	{RoleHR, ResourceOTP, ActionIssue},

	{RoleAdmin, ResourceAudit, ActionRead},
	{RoleAdmin, ResourceEmployee, ActionDelete},

	{RoleSuperAdmin, ResourceDocument, ActionVerify},
}

// roleInheritance: g(child, parent). SuperAdmin transitively holds every
// capability in the table.
var roleInheritance = [][2]string{
	{RoleHR, RoleEmployee},
	{RoleAdmin, RoleHR},
	{RoleSuperAdmin, RoleAdmin},
}
