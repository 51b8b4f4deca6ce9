package payperiod

type ListPayPeriodsRequest struct {
	DepartmentID string `form:"department_id"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

type GeneratePayPeriodsRequest struct {
	DepartmentID string `json:"department_id" binding:"required"`
	Year         int    `json:"year" binding:"required,min=2000,max=2100"`
	Month        int    `json:"month" binding:"required,min=1,max=12"`
}

type PayPeriodResponse struct {
	ID           string    `json:"id,omitempty"`
	DepartmentID string    `json:"department_id,omitempty"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	PayoutDate   string    `json:"payout_date,omitempty"`
	PeriodType   string    `json:"period_type,omitempty"`
	Relevance    Relevance `json:"relevance"`
}

// PayPeriodSummary is one entry of the window. A period whose totals could
// not be computed is Degraded, carries zero totals and the failure message.
type PayPeriodSummary struct {
	Period   PayPeriodResponse `json:"period"`
	Totals   PeriodTotals      `json:"totals"`
	Degraded bool              `json:"degraded"`
	Error    string            `json:"error,omitempty"`
}

type PeriodTotalsResponse struct {
	Period PayPeriodResponse `json:"period"`
	Totals PeriodTotals      `json:"totals"`
}

type GenerateResult struct {
	Created []PayPeriodResponse `json:"created"`
	Skipped []PayPeriodResponse `json:"skipped"`
}
