package events

import "time"

const LeaveDecidedTopic = "hr.leave.decision.v1"

const (
	LeaveApprovedEventType = "leave.approved"
	LeaveRejectedEventType = "leave.rejected"
)

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	Status     string    `json:"status"`
	TotalDays  int       `json:"total_days"`
	OccurredAt time.Time `json:"occurred_at"`
}
