package employee

type OptionsRequest struct {
	DepartmentID string `form:"department_id"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
}
