package notification

import (
	"context"
	"fmt"

	"go-hrms/internal/events"

	"go.uber.org/zap"
)

// Directory resolves an employee id to the address notifications go to.
// Implemented by the employee service.
type Directory interface {
	EmailByEmployeeID(ctx context.Context, employeeID string) (string, error)
}

type Service interface {
	NotifyLeaveDecision(ctx context.Context, event events.LeaveDecidedEvent) error
}

type service struct {
	directory Directory
	mailer    Mailer
	logger    *zap.Logger
}

func NewService(directory Directory, mailer Mailer, logger *zap.Logger) Service {
	return &service{
		directory: directory,
		mailer:    mailer,
		logger:    logger.Named("notification.service"),
	}
}

func (s *service) NotifyLeaveDecision(ctx context.Context, event events.LeaveDecidedEvent) error {
	email, err := s.directory.EmailByEmployeeID(ctx, event.EmployeeID)
	if err != nil {
		return fmt.Errorf("resolve employee email: %w", err)
	}

	subject := fmt.Sprintf("Your leave request has been %s", event.Status)
	body := fmt.Sprintf(
		"Hello,\n\nYour %s leave request (%s) covering %d day(s) has been %s.\n\nHR Department",
		event.LeaveType, event.LeaveID, event.TotalDays, event.Status,
	)

	if err := s.mailer.Send(email, subject, body); err != nil {
		return fmt.Errorf("send decision mail: %w", err)
	}

	s.logger.Info("leave decision mail sent",
		zap.String("leave_id", event.LeaveID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("status", event.Status),
	)
	return nil
}
