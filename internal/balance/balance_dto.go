package balance

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Annual     int    `json:"annual"`
	Emergency  int    `json:"emergency"`
	Medical    int    `json:"medical"`
	Total      int    `json:"total"`
}

// ResetResponse reports whether the reset actually happened. A
// same-year call is a no-op and returns the stored balance unchanged.
type ResetResponse struct {
	BalanceResponse
	Reset bool `json:"reset"`
}

func mapToResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID: b.EmployeeID,
		Year:       b.Year,
		Annual:     b.Annual,
		Emergency:  b.Emergency,
		Medical:    b.Medical,
		Total:      b.Annual + b.Emergency + b.Medical,
	}
}
