package payroll

type CreatePayrollRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required"`
	Month       string `json:"month" binding:"required"`
	Year        int    `json:"year" binding:"required"`
	BasicSalary string `json:"basic_salary" binding:"required"`
	Allowances  string `json:"allowances"`
	Deductions  string `json:"deductions"`
}

type UpdatePayrollRequest struct {
	BasicSalary string `json:"basic_salary" binding:"required"`
	Allowances  string `json:"allowances"`
	Deductions  string `json:"deductions"`
}

type PayrollResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Month       string `json:"month"`
	Year        int    `json:"year"`
	BasicSalary string `json:"basic_salary"`
	Allowances  string `json:"allowances"`
	Deductions  string `json:"deductions"`
	NetSalary   string `json:"net_salary"`
}

func mapToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Month:       p.Month,
		Year:        p.Year,
		BasicSalary: p.BasicSalary.StringFixed(2),
		Allowances:  p.Allowances.StringFixed(2),
		Deductions:  p.Deductions.StringFixed(2),
		NetSalary:   p.NetSalary().StringFixed(2),
	}
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	out := make([]PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		out = append(out, mapToResponse(p))
	}
	return out
}
