package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is append-only: no update or delete path exists anywhere
// in this package.
type AuditEntry struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID    uuid.UUID `gorm:"column:actor_id;type:uuid;not null;index"`
	ActorEmail string    `gorm:"column:actor_email;type:varchar(255);not null"`
	ActorRole  string    `gorm:"column:actor_role;type:varchar(20);not null"`
	Action     string    `gorm:"column:action;type:varchar(60);not null;index"`
	TargetType string    `gorm:"column:target_type;type:varchar(30);not null;index"`
	TargetID   string    `gorm:"column:target_id;type:varchar(60);not null"`
	Details    []byte    `gorm:"column:details;type:jsonb"`
	IP         string    `gorm:"column:ip;type:varchar(45)"`
	UserAgent  string    `gorm:"column:user_agent;type:varchar(255)"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

// Action tags written by the workflow services.
const (
	ActionDocumentUploaded       = "DOCUMENT_UPLOADED"
	ActionDocumentApproved       = "DOCUMENT_APPROVED"
	ActionDocumentRejected       = "DOCUMENT_REJECTED"
	ActionDocumentVerified       = "DOCUMENT_VERIFIED"
	ActionProfileUpdateRequested = "PROFILE_UPDATE_REQUESTED"
	ActionProfileUpdateApproved  = "PROFILE_UPDATE_APPROVED"
	ActionProfileUpdateRejected  = "PROFILE_UPDATE_REJECTED"
	ActionAttendanceMarked       = "ATTENDANCE_MARKED"
	ActionEmployeeCreated        = "EMPLOYEE_CREATED"
	ActionEmployeeUpdated        = "EMPLOYEE_UPDATED"
	ActionEmployeeDeleted        = "EMPLOYEE_DELETED"
	ActionOTPIssued              = "OTP_ISSUED"
)

// Target types referenced by entries.
const (
	TargetDocument      = "document"
	TargetEmployee      = "employee"
	TargetProfileUpdate = "profile_update"
	TargetAttendance    = "attendance"
)
