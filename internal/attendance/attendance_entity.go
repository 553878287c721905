package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLeave   = "LEAVE"
	StatusHalfday = "HALFDAY"
)

// Record is one employee-day. The (employee_id, date) pair is unique;
// marking twice on the same day merges into the existing row.
type Record struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:idx_attendance_employee_date"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_employee_date"`

	CheckIn  *time.Time `gorm:"column:check_in;type:timestamptz"`
	CheckOut *time.Time `gorm:"column:check_out;type:timestamptz"`
	Status   string     `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`

	// WorkHours is derived whenever both timestamps are present.
	WorkHours float64 `gorm:"column:work_hours;not null;default:0"`

	Note string `gorm:"column:note;type:text"`

	// ReminderSentAt makes the daily sweep idempotent: a reminder goes
	// out at most once per employee-day.
	ReminderSentAt *time.Time `gorm:"column:reminder_sent_at;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "attendance_records"
}

func validStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHalfday:
		return true
	default:
		return false
	}
}
