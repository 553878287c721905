package profileupdate

type SubmitRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Address    string `json:"address"`
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Remarks  string `json:"remarks"`
}

type RequestResponse struct {
	ID         string            `json:"id"`
	EmployeeID string            `json:"employee_id"`
	Changes    map[string]string `json:"changes"`
	Status     string            `json:"status"`
	Remarks    string            `json:"remarks,omitempty"`
	DecidedAt  string            `json:"decided_at,omitempty"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}
