package profileupdate

import (
	"time"

	"github.com/google/uuid"
)

// Status of a profile change request. One row exists per employee;
// submitting again overwrites whatever was there before.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type UpdateRequest struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex"`

	// Changes holds only allow-listed fields as a JSON object.
	Changes []byte `gorm:"column:changes;type:jsonb;not null"`
	Status  string `gorm:"column:status;type:varchar(20);not null;default:PENDING;index"`
	Remarks string `gorm:"column:remarks;type:text"`

	DecidedBy *uuid.UUID `gorm:"column:decided_by;type:uuid"`
	DecidedAt *time.Time `gorm:"column:decided_at;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (UpdateRequest) TableName() string {
	return "profile_update_requests"
}
