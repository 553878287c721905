package document

import "io"

// UploadInput carries the multipart upload after the handler has
// pulled it apart; Reader streams the file body.
type UploadInput struct {
	Name         string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Reader       io.Reader
	Grant        string
}

type ReviewRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

// FinalReviewRequest is the super-admin decision on an approved
// document.
type FinalReviewRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

type DocumentResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
	Status       string `json:"status"`
	Remarks      string `json:"remarks,omitempty"`
	ReviewedAt   string `json:"reviewed_at,omitempty"`
	VerifiedAt   string `json:"verified_at,omitempty"`
	CreatedAt    string `json:"created_at"`
}
