package employee

type CreateEmployeeRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	EmployeeCode string `json:"employee_code"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Address      string `json:"address"`
	JoinDate     string `json:"join_date"`
}

type UpdateEmployeeRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Address    string `json:"address"`
	Role       string `json:"role"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone,omitempty"`
	Department   string `json:"department,omitempty"`
	Position     string `json:"position,omitempty"`
	Address      string `json:"address,omitempty"`
	JoinDate     string `json:"join_date,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
