package balance

import (
	"context"
	"errors"
	"time"

	balanceerrors "go-hrms/internal/balance/errors"
	"go-hrms/internal/docstore"
	"go-hrms/internal/shared/apperror"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Ledger owns every read and write of leave balances. All callers go
// through it so the delete-then-recreate rewrite stays in one place.
type Ledger interface {
	// EnsureCurrentYear returns the balance for the current year,
	// creating it and clearing stale years when needed. The returned
	// bool reports whether a reset or first allocation happened.
	EnsureCurrentYear(ctx context.Context, employeeID string) (Balance, bool, error)
	// Deduct subtracts days from one leave type and rewrites the
	// document. It never lets a balance go below zero.
	Deduct(ctx context.Context, employeeID, leaveType string, days int) (Balance, error)
	View(ctx context.Context, employeeID string) (BalanceResponse, error)
	// Reset clears stale years and issues the current-year allocation
	// when one is missing. A record that is already current is left
	// untouched; spent days come back only with the year rollover.
	Reset(ctx context.Context, employeeID string) (ResetResponse, error)
}

type ledger struct {
	repo   Repository
	logger *zap.Logger
	group  singleflight.Group
}

func NewLedger(repo Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("balance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.ledger")
	}
	return &ledger{repo: repo, logger: l}
}

type ensureResult struct {
	balance Balance
	reset   bool
}

func (s *ledger) EnsureCurrentYear(ctx context.Context, employeeID string) (Balance, bool, error) {
	if employeeID == "" {
		return Balance{}, false, balanceerrors.ErrInvalidEmployeeID
	}

	// Collapse concurrent ensures for the same employee into one store
	// round trip. This only helps within the process; the create-fails-
	// if-exists primitive is the cross-process guard.
	v, err, _ := s.group.Do(employeeID, func() (interface{}, error) {
		return s.ensureCurrentYear(ctx, employeeID)
	})
	if err != nil {
		return Balance{}, false, err
	}

	res := v.(ensureResult)
	return res.balance, res.reset, nil
}

func (s *ledger) ensureCurrentYear(ctx context.Context, employeeID string) (ensureResult, error) {
	year := time.Now().UTC().Year()

	balances, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return ensureResult{}, apperror.StoreFailure(err, "scan leave balances")
	}

	var stale []Balance
	for _, b := range balances {
		if b.Year == year {
			return ensureResult{balance: b}, nil
		}
		stale = append(stale, b)
	}

	for _, old := range stale {
		if err := s.repo.Delete(ctx, old.ID); err != nil {
			return ensureResult{}, apperror.StoreFailure(err, "delete stale leave balance")
		}
		s.logger.Info("stale leave balance cleared",
			zap.String("employee_id", employeeID),
			zap.Int("stale_year", old.Year),
			zap.Int("current_year", year),
		)
	}

	fresh := NewBalance(employeeID, year)
	if err := s.repo.Create(ctx, fresh); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			// Another process won the create race; its document is
			// identical to ours, so just read it back.
			existing, readErr := s.repo.FindByID(ctx, fresh.ID)
			if readErr != nil {
				return ensureResult{}, apperror.StoreFailure(readErr, "reread leave balance")
			}
			return ensureResult{balance: *existing}, nil
		}
		return ensureResult{}, apperror.StoreFailure(err, "create leave balance")
	}

	s.logger.Info("leave balance allocated",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
	)
	return ensureResult{balance: fresh, reset: true}, nil
}

func (s *ledger) Deduct(ctx context.Context, employeeID, leaveType string, days int) (Balance, error) {
	if !IsValidType(leaveType) {
		return Balance{}, balanceerrors.ErrUnknownLeaveType
	}
	if days <= 0 {
		return Balance{}, balanceerrors.ErrInvalidDays
	}

	current, _, err := s.EnsureCurrentYear(ctx, employeeID)
	if err != nil {
		return Balance{}, err
	}

	remaining, _ := current.Remaining(leaveType)
	if days > remaining {
		return Balance{}, balanceerrors.ErrInsufficientBalance
	}

	updated := current.withDeduction(leaveType, days)

	// The store cannot update in place. Delete the old document first so a
	// failure leaves the employee under-credited rather than over-credited.
	if err := s.repo.Delete(ctx, current.ID); err != nil {
		return Balance{}, apperror.StoreFailure(err, "delete leave balance for rewrite")
	}
	if err := s.repo.Create(ctx, updated); err != nil {
		s.logger.Error("leave balance rewrite lost after delete",
			zap.String("employee_id", employeeID),
			zap.Int("year", updated.Year),
			zap.String("leave_type", leaveType),
			zap.Int("days", days),
			zap.Int("annual", updated.Annual),
			zap.Int("emergency", updated.Emergency),
			zap.Int("medical", updated.Medical),
			zap.Error(err),
		)
		return Balance{}, apperror.StoreFailure(err, "recreate leave balance")
	}

	s.logger.Info("leave balance deducted",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", leaveType),
		zap.Int("days", days),
		zap.Int("remaining", remaining-days),
	)
	return updated, nil
}

func (s *ledger) View(ctx context.Context, employeeID string) (BalanceResponse, error) {
	b, _, err := s.EnsureCurrentYear(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	return mapToResponse(b), nil
}

func (s *ledger) Reset(ctx context.Context, employeeID string) (ResetResponse, error) {
	b, reset, err := s.EnsureCurrentYear(ctx, employeeID)
	if err != nil {
		return ResetResponse{}, err
	}

	if reset {
		s.logger.Info("leave balance reset",
			zap.String("employee_id", employeeID),
			zap.Int("year", b.Year),
		)
	}
	return ResetResponse{BalanceResponse: mapToResponse(b), Reset: reset}, nil
}
