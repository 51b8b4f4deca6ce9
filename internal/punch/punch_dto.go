package punch

type ListPunchesRequest struct {
	EmployeeID string `form:"employee_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type ZoneDisplay struct {
	Ref          string `json:"ref,omitempty"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation"`
}

type PunchResponse struct {
	ID              string      `json:"id"`
	EmployeeID      string      `json:"employee_id"`
	EmployeeName    string      `json:"employee_name,omitempty"`
	ClientID        string      `json:"client_id,omitempty"`
	PunchInTime     string      `json:"punch_in_time"`
	PunchOutTime    string      `json:"punch_out_time,omitempty"`
	PunchInLocal    string      `json:"punch_in_local,omitempty"`
	PunchOutLocal   string      `json:"punch_out_local,omitempty"`
	Timezone        ZoneDisplay `json:"timezone"`
	PunchOutZone    ZoneDisplay `json:"punch_out_timezone"`
	DurationMinutes *int        `json:"duration_minutes"`
	Memo            string      `json:"memo,omitempty"`
	ProjectIDs      []string    `json:"project_ids"`
	TimeCardID      string      `json:"time_card_id,omitempty"`
}
