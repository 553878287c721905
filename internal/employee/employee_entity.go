package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the identity aggregate. Documents, pending profile
// updates and notifications are owned child tables keyed by EmployeeID;
// they are never shared across employees.
type Employee struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode string    `gorm:"column:employee_code;type:varchar(20);not null;uniqueIndex"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(100);not null"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:EMPLOYEE"`

	FullName   string     `gorm:"column:full_name;type:varchar(120);not null"`
	Phone      string     `gorm:"column:phone;type:varchar(20)"`
	Department string     `gorm:"column:department;type:varchar(80)"`
	Position   string     `gorm:"column:position;type:varchar(80)"`
	Address    string     `gorm:"column:address;type:text"`
	JoinDate   *time.Time `gorm:"column:join_date;type:date"`

	// OTP gate state; cleared on successful verification or expiry.
	OTPCode      *string    `gorm:"column:otp_code;type:varchar(6)"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at;type:timestamptz"`
	OTPAttempts  int        `gorm:"column:otp_attempts;not null;default:0"`

	// Password reset: sha256 digest of the mailed token, never the raw token.
	ResetTokenHash      *string    `gorm:"column:reset_token_hash;type:varchar(64)"`
	ResetTokenExpiresAt *time.Time `gorm:"column:reset_token_expires_at;type:timestamptz"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
