package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/notification"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeDirectory struct {
	emailByEmployeeIDFn func(ctx context.Context, employeeID string) (string, error)
}

func (f *fakeDirectory) EmailByEmployeeID(ctx context.Context, employeeID string) (string, error) {
	return f.emailByEmployeeIDFn(ctx, employeeID)
}

type fakeMailer struct {
	sendFn func(to, subject, body string) error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	return f.sendFn(to, subject, body)
}

func TestService_NotifyLeaveDecision(t *testing.T) {
	event := events.LeaveDecidedEvent{
		EventType:  events.LeaveApprovedEventType,
		LeaveID:    "leave_1700000000000_ab12cd34",
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		Status:     "Approved",
		TotalDays:  3,
		OccurredAt: time.Now().UTC(),
	}

	t.Run("success", func(t *testing.T) {
		var sentTo, sentSubject string
		dir := &fakeDirectory{
			emailByEmployeeIDFn: func(ctx context.Context, employeeID string) (string, error) {
				assert.Equal(t, "emp-1", employeeID)
				return "jane@example.com", nil
			},
		}
		mailer := &fakeMailer{
			sendFn: func(to, subject, body string) error {
				sentTo = to
				sentSubject = subject
				return nil
			},
		}

		svc := notification.NewService(dir, mailer, zap.NewNop())
		err := svc.NotifyLeaveDecision(context.Background(), event)

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", sentTo)
		assert.Contains(t, sentSubject, "Approved")
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		dir := &fakeDirectory{
			emailByEmployeeIDFn: func(ctx context.Context, employeeID string) (string, error) {
				return "", errors.New("not found")
			},
		}
		mailer := &fakeMailer{
			sendFn: func(to, subject, body string) error {
				t.Fatal("mail must not be sent")
				return nil
			},
		}

		svc := notification.NewService(dir, mailer, zap.NewNop())
		err := svc.NotifyLeaveDecision(context.Background(), event)

		assert.Error(t, err)
	})

	t.Run("negative mailer failure", func(t *testing.T) {
		dir := &fakeDirectory{
			emailByEmployeeIDFn: func(ctx context.Context, employeeID string) (string, error) {
				return "jane@example.com", nil
			},
		}
		mailer := &fakeMailer{
			sendFn: func(to, subject, body string) error {
				return errors.New("smtp unreachable")
			},
		}

		svc := notification.NewService(dir, mailer, zap.NewNop())
		err := svc.NotifyLeaveDecision(context.Background(), event)

		assert.Error(t, err)
	})
}
