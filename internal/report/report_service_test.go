package report_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"go-hrms/internal/docstore"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func seedData(t *testing.T, store docstore.Client) {
	t.Helper()
	ctx := context.Background()

	employees := employee.NewRepository(store)
	assert.NoError(t, employees.Create(ctx, employee.Employee{
		ID:        "emp-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Lim",
		Role:      "employee",
		CreatedAt: time.Now().UTC(),
	}))

	leaves := leave.NewRepository(store)
	base := time.Now().UTC().Add(-time.Hour)
	rows := []leave.LeaveRequest{
		{ID: "leave_1", EmployeeID: "emp-1", LeaveType: "annual", StartDate: "2026-09-07", EndDate: "2026-09-09", TotalDays: 3, Reason: "trip", Status: leave.StatusApproved, CreatedAt: base},
		{ID: "leave_2", EmployeeID: "emp-1", LeaveType: "medical", StartDate: "2026-10-01", EndDate: "2026-10-01", TotalDays: 1, Reason: "clinic", Status: leave.StatusRejected, CreatedAt: base.Add(time.Minute)},
		{ID: "leave_3", EmployeeID: "emp-2", LeaveType: "emergency", StartDate: "2026-11-02", EndDate: "2026-11-03", TotalDays: 2, Reason: "family", Status: leave.StatusPending, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range rows {
		assert.NoError(t, leaves.Create(ctx, &rows[i]))
	}
}

func TestService_LeaveReport(t *testing.T) {
	store := docstore.NewMemoryClient()
	seedData(t, store)
	svc := report.NewService(leave.NewRepository(store), employee.NewRepository(store), zap.NewNop())

	rep, err := svc.LeaveReport(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 3, rep.TotalRequests)
	assert.Equal(t, 1, rep.TotalApproved)
	assert.Equal(t, 1, rep.TotalRejected)
	assert.Equal(t, 1, rep.TotalPending)
	assert.Equal(t, 3, rep.DaysApproved)

	// Known employees get their name, unknown ones fall back to the id.
	byID := map[string]report.LeaveReportRow{}
	for _, row := range rep.Rows {
		byID[row.LeaveID] = row
	}
	assert.Equal(t, "Jane Lim", byID["leave_1"].EmployeeName)
	assert.Equal(t, "emp-2", byID["leave_3"].EmployeeName)
}

func TestService_ExportLeaveReport(t *testing.T) {
	store := docstore.NewMemoryClient()
	seedData(t, store)
	svc := report.NewService(leave.NewRepository(store), employee.NewRepository(store), zap.NewNop())

	data, err := svc.ExportLeaveReport(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	// The payload must be a readable workbook with a header plus one row
	// per request.
	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leave Report")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, "Leave ID", rows[0][0])
}
