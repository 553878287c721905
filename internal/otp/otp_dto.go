package otp

type IssueRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyRequest struct {
	Code string `json:"code" binding:"required"`
}

type VerifyResponse struct {
	UploadGrant string `json:"upload_grant"`
	ExpiresIn   int    `json:"expires_in"`
}
