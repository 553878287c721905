package attendance

type MarkRequest struct {
	Date     string `json:"date"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Status   string `json:"status"`
	Note     string `json:"note"`
}

type MarkForRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	MarkRequest
}

type RecordResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Date           string  `json:"date"`
	CheckIn        string  `json:"check_in,omitempty"`
	CheckOut       string  `json:"check_out,omitempty"`
	Status         string  `json:"status"`
	WorkHours      float64 `json:"work_hours"`
	Note           string  `json:"note,omitempty"`
	ReminderSentAt string  `json:"reminder_sent_at,omitempty"`
}
