package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

const Collection = "Payroll"

type Payroll struct {
	ID          string
	EmployeeID  string
	Month       string // two digits, "01" through "12"
	Year        int
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	CreatedAt   time.Time
}

func (p Payroll) NetSalary() decimal.Decimal {
	return p.BasicSalary.Add(p.Allowances).Sub(p.Deductions)
}
