package leave

import "time"

const Collection = "LeaveRequest"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// LeaveRequest is the stored form of an application. Dates stay as the
// YYYY-MM-DD strings the employee submitted; TotalDays is supplied by the
// caller and is the number the ledger charges.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  string
	StartDate  string
	EndDate    string
	TotalDays  int
	Reason     string
	Status     string
	CreatedAt  time.Time
}

func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
