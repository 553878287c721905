package events

import "time"

const DocumentLifecycleTopic = "hr.document.lifecycle.v1"

// DocumentLifecycleEvent is emitted through the outbox whenever a
// document changes state (upload, review, final verification).
type DocumentLifecycleEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	DocumentID    string    `json:"document_id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeEmail string    `json:"employee_email"`
	DocumentName  string    `json:"document_name"`
	Status        string    `json:"status"`
	Remarks       string    `json:"remarks,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	EventDocumentUploaded = "document_uploaded"
	EventDocumentReviewed = "document_reviewed"
	EventDocumentVerified = "document_verified"
)
