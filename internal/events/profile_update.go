package events

import "time"

const ProfileUpdateTopic = "hr.profile_update.lifecycle.v1"

type ProfileUpdateEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeEmail string    `json:"employee_email"`
	Decision      string    `json:"decision"`
	Fields        []string  `json:"fields,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	EventProfileUpdateRequested   = "profile_update_requested"
	EventProfileUpdateAdjudicated = "profile_update_adjudicated"
)
