package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification rows are owned by exactly one employee and only ever
// appended or flipped to read; they are never edited, reordered or
// deleted.
type Notification struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	Type       string    `gorm:"column:type;type:varchar(40);not null"`
	Title      string    `gorm:"column:title;type:varchar(120);not null"`
	Message    string    `gorm:"column:message;type:text;not null"`
	Meta       []byte    `gorm:"column:meta;type:jsonb"`
	Read       bool      `gorm:"column:read;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

const (
	TypeDocumentReviewed      = "DOCUMENT_REVIEWED"
	TypeDocumentVerified      = "DOCUMENT_VERIFIED"
	TypeProfileUpdateReceived = "PROFILE_UPDATE_RECEIVED"
	TypeProfileUpdateDecided  = "PROFILE_UPDATE_DECIDED"
	TypeDocumentUploaded      = "DOCUMENT_UPLOADED"
)
