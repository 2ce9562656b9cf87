package report

import (
	"bytes"
	"context"
	"fmt"

	"go-hrms/internal/employee"
	"go-hrms/internal/leave"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type LeaveReportRow struct {
	LeaveID      string `json:"leave_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalDays    int    `json:"total_days"`
	Status       string `json:"status"`
}

type LeaveReport struct {
	Rows          []LeaveReportRow `json:"rows"`
	TotalRequests int              `json:"total_requests"`
	TotalApproved int              `json:"total_approved"`
	TotalRejected int              `json:"total_rejected"`
	TotalPending  int              `json:"total_pending"`
	DaysApproved  int              `json:"days_approved"`
}

type Service interface {
	LeaveReport(ctx context.Context) (LeaveReport, error)
	// ExportLeaveReport renders the report as an xlsx workbook.
	ExportLeaveReport(ctx context.Context) ([]byte, error)
}

type service struct {
	leaves    leave.Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(leaves leave.Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{leaves: leaves, employees: employees, logger: l}
}

func (s *service) LeaveReport(ctx context.Context) (LeaveReport, error) {
	requests, err := s.leaves.FindAll(ctx)
	if err != nil {
		return LeaveReport{}, err
	}

	names, err := s.employeeNames(ctx)
	if err != nil {
		return LeaveReport{}, err
	}

	report := LeaveReport{Rows: make([]LeaveReportRow, 0, len(requests))}
	for _, l := range requests {
		report.TotalRequests++
		switch l.Status {
		case leave.StatusApproved:
			report.TotalApproved++
			report.DaysApproved += l.TotalDays
		case leave.StatusRejected:
			report.TotalRejected++
		default:
			report.TotalPending++
		}

		name := names[l.EmployeeID]
		if name == "" {
			name = l.EmployeeID
		}

		report.Rows = append(report.Rows, LeaveReportRow{
			LeaveID:      l.ID,
			EmployeeID:   l.EmployeeID,
			EmployeeName: name,
			LeaveType:    l.LeaveType,
			StartDate:    l.StartDate,
			EndDate:      l.EndDate,
			TotalDays:    l.TotalDays,
			Status:       l.Status,
		})
	}

	return report, nil
}

func (s *service) ExportLeaveReport(ctx context.Context) ([]byte, error) {
	report, err := s.LeaveReport(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leave Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Leave ID", "Employee", "Type", "Start", "End", "Days", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range report.Rows {
		values := []any{
			row.LeaveID,
			row.EmployeeName,
			row.LeaveType,
			row.StartDate,
			row.EndDate,
			row.TotalDays,
			row.Status,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	summaryRow := len(report.Rows) + 3
	summary := fmt.Sprintf(
		"Requests: %d  Approved: %d  Rejected: %d  Pending: %d  Days approved: %d",
		report.TotalRequests, report.TotalApproved, report.TotalRejected, report.TotalPending, report.DaysApproved,
	)
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	if err := f.SetCellValue(sheet, cell, summary); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	s.logger.Info("leave report exported", zap.Int("rows", len(report.Rows)))
	return buf.Bytes(), nil
}

func (s *service) employeeNames(ctx context.Context) (map[string]string, error) {
	employees, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}
	return names, nil
}
