package balance

import "fmt"

const Collection = "LeaveBalance"

// Every employee starts each year with the same allocation per leave type.
const DefaultAllocation = 10

const (
	TypeAnnual    = "annual"
	TypeEmergency = "emergency"
	TypeMedical   = "medical"
)

type Balance struct {
	ID         string
	EmployeeID string
	Year       int
	Annual     int
	Emergency  int
	Medical    int
}

// DocumentID builds the deterministic balance document id, one per
// employee per year: lb_<employee-prefix>_<year>.
func DocumentID(employeeID string, year int) string {
	prefix := employeeID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("lb_%s_%d", prefix, year)
}

// NewBalance returns a fresh allocation for the given year.
func NewBalance(employeeID string, year int) Balance {
	return Balance{
		ID:         DocumentID(employeeID, year),
		EmployeeID: employeeID,
		Year:       year,
		Annual:     DefaultAllocation,
		Emergency:  DefaultAllocation,
		Medical:    DefaultAllocation,
	}
}

func IsValidType(leaveType string) bool {
	switch leaveType {
	case TypeAnnual, TypeEmergency, TypeMedical:
		return true
	default:
		return false
	}
}

// Remaining returns the days left for a leave type. The bool is false for
// an unknown type.
func (b Balance) Remaining(leaveType string) (int, bool) {
	switch leaveType {
	case TypeAnnual:
		return b.Annual, true
	case TypeEmergency:
		return b.Emergency, true
	case TypeMedical:
		return b.Medical, true
	default:
		return 0, false
	}
}

// withDeduction returns a copy with the given days subtracted from one
// leave type. Callers must have checked the floor already.
func (b Balance) withDeduction(leaveType string, days int) Balance {
	switch leaveType {
	case TypeAnnual:
		b.Annual -= days
	case TypeEmergency:
		b.Emergency -= days
	case TypeMedical:
		b.Medical -= days
	}
	return b
}
