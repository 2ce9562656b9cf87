package leave

import (
	"context"
	"strings"
	"time"

	"go-hrms/internal/balance"
	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/idgen"

	"go.uber.org/zap"
)

type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string) (DecisionResponse, error)
	Reject(ctx context.Context, actorID, id string) (DecisionResponse, error)
}

type service struct {
	repo      Repository
	ledger    balance.Ledger
	publisher EventPublisher
	logger    *zap.Logger
}

func NewService(repo Repository, ledger balance.Ledger, publisher EventPublisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, ledger: ledger, publisher: publisher, logger: l}
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("total_days", req.TotalDays),
	)

	leaveType, err := validateApplyRequest(employeeID, &req)
	if err != nil {
		s.logger.Warn("apply leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// Rolls the balance forward to the current year before the request is
	// filed, so approval later never sees a stale allocation.
	if _, _, err := s.ledger.EnsureCurrentYear(ctx, employeeID); err != nil {
		s.logger.Error("apply leave ensure balance failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:         idgen.NewID("leave"),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalDays:  req.TotalDays,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", leaveType),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if employeeID == "" {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (DecisionResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DecisionResponse{}, err
	}
	if err := checkNotDecided(l.Status); err != nil {
		return DecisionResponse{}, err
	}

	current, _, err := s.ledger.EnsureCurrentYear(ctx, l.EmployeeID)
	if err != nil {
		s.logger.Error("approve leave ensure balance failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	remaining, ok := current.Remaining(l.LeaveType)
	if !ok {
		return DecisionResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	if l.TotalDays > remaining {
		s.logger.Warn("approve leave insufficient balance",
			zap.String("leave_id", id),
			zap.String("leave_type", l.LeaveType),
			zap.Int("requested", l.TotalDays),
			zap.Int("remaining", remaining),
		)
		return DecisionResponse{}, leaveerrors.InsufficientBalance(l.LeaveType, l.TotalDays, remaining)
	}

	// Deduct before flipping the status. If the flip then fails the
	// employee is under-credited, which a reset can repair; the reverse
	// order could approve leave that was never charged.
	updatedBal, err := s.ledger.Deduct(ctx, l.EmployeeID, l.LeaveType, l.TotalDays)
	if err != nil {
		s.logger.Error("approve leave deduction failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	updated, err := s.repo.RewriteStatus(ctx, id, StatusApproved)
	if err != nil {
		s.logger.Error("approve leave status flip failed after deduction",
			zap.String("leave_id", id),
			zap.String("employee_id", l.EmployeeID),
			zap.String("leave_type", l.LeaveType),
			zap.Int("charged_days", l.TotalDays),
			zap.Error(err),
		)
		return DecisionResponse{}, err
	}

	s.publishDecision(ctx, *updated, events.LeaveApprovedEventType)

	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("employee_id", l.EmployeeID),
		zap.String("actor_id", actorID),
	)

	remainingAfter, _ := updatedBal.Remaining(l.LeaveType)
	return DecisionResponse{
		Leave:            mapToResponse(*updated),
		RemainingBalance: &remainingAfter,
	}, nil
}

func (s *service) Reject(ctx context.Context, actorID, id string) (DecisionResponse, error) {
	s.logger.Debug("reject leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DecisionResponse{}, err
	}
	if err := checkNotDecided(l.Status); err != nil {
		return DecisionResponse{}, err
	}

	updated, err := s.repo.RewriteStatus(ctx, id, StatusRejected)
	if err != nil {
		s.logger.Error("reject leave status flip failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	s.publishDecision(ctx, *updated, events.LeaveRejectedEventType)

	s.logger.Info("reject leave success",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	return DecisionResponse{Leave: mapToResponse(*updated)}, nil
}

// publishDecision stages the event best effort; a failed publish never
// rolls back the decision itself.
func (s *service) publishDecision(ctx context.Context, l LeaveRequest, eventType string) {
	event := events.LeaveDecidedEvent{
		EventType:  eventType,
		LeaveID:    l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		Status:     l.Status,
		TotalDays:  l.TotalDays,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishLeaveDecided(ctx, event); err != nil {
		s.logger.Warn("publish leave decision failed",
			zap.String("leave_id", l.ID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func checkNotDecided(status string) error {
	switch status {
	case StatusApproved:
		return leaveerrors.ErrAlreadyApproved
	case StatusRejected:
		return leaveerrors.ErrAlreadyRejected
	default:
		return nil
	}
}

// validateApplyRequest normalizes and checks the application. It returns
// the canonical lowercase leave type.
func validateApplyRequest(employeeID string, req *ApplyLeaveRequest) (string, error) {
	if employeeID == "" {
		return "", leaveerrors.ErrInvalidEmployeeID
	}

	leaveType := strings.ToLower(strings.TrimSpace(req.LeaveType))
	if !balance.IsValidType(leaveType) {
		return "", leaveerrors.ErrInvalidLeaveType
	}

	if !isValidDate(req.StartDate) || !isValidDate(req.EndDate) {
		return "", leaveerrors.ErrInvalidDateFormat
	}
	if req.TotalDays <= 0 {
		return "", leaveerrors.ErrInvalidTotalDays
	}
	if strings.TrimSpace(req.Reason) == "" {
		return "", leaveerrors.ErrReasonRequired
	}
	return leaveType, nil
}

// isValidDate checks the YYYY-MM-DD shape and per-field ranges. It is
// deliberately a syntax check only: 2025-02-31 passes, matching the
// behavior callers already depend on.
func isValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}

	year, ok := parseDigits(s[0:4])
	if !ok || year < 1900 || year > 2100 {
		return false
	}
	month, ok := parseDigits(s[5:7])
	if !ok || month < 1 || month > 12 {
		return false
	}
	day, ok := parseDigits(s[8:10])
	if !ok || day < 1 || day > 31 {
		return false
	}
	return true
}

func parseDigits(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
