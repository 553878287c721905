package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is one uploaded file moving through the two-stage review:
// HR approves or rejects, then a super admin verifies approved files.
type Document struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`

	Name         string `gorm:"column:name;type:varchar(120);not null"`
	FileName     string `gorm:"column:file_name;type:varchar(100);not null"`
	OriginalName string `gorm:"column:original_name;type:varchar(255);not null"`
	MimeType     string `gorm:"column:mime_type;type:varchar(60);not null"`
	SizeBytes    int64  `gorm:"column:size_bytes;not null"`

	Status  Status `gorm:"column:status;type:varchar(20);not null;default:PENDING;index"`
	Remarks string `gorm:"column:remarks;type:text"`

	ReviewedBy *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at;type:timestamptz"`
	VerifiedBy *uuid.UUID `gorm:"column:verified_by;type:uuid"`
	VerifiedAt *time.Time `gorm:"column:verified_at;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
