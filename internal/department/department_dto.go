package department

type ListDepartmentsRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

type DepartmentResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Active bool   `json:"active"`
}
