package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/balance"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/idgen"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PayrollPurger removes an employee's payroll records when the employee
// is deleted. Implemented by the payroll service.
type PayrollPurger interface {
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	// EmailByEmployeeID serves the notification consumer.
	EmailByEmployeeID(ctx context.Context, employeeID string) (string, error)
}

type service struct {
	repo      Repository
	ledger    balance.Ledger
	publisher EventPublisher
	purger    PayrollPurger
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	ledger balance.Ledger,
	publisher EventPublisher,
	purger PayrollPurger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:      repo,
		ledger:    ledger,
		publisher: publisher,
		purger:    purger,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != "hr" && role != "employee" {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		s.logger.Warn("create employee email taken", zap.String("email", req.Email))
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	} else if !errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
		s.logger.Error("create employee email lookup failed", zap.Error(err))
		return EmployeeResponse{}, apperror.StoreFailure(err, "scan employees")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	e := Employee{
		ID:           idgen.NewUUID(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ICPassport:   req.ICPassport,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, apperror.StoreFailure(err, "create employee")
	}

	// Allocate this year's leave balance right away so the first leave
	// request never races the first allocation.
	if _, _, err := s.ledger.EnsureCurrentYear(ctx, e.ID); err != nil {
		s.logger.Error("create employee allocate balance failed",
			zap.String("employee_id", e.ID),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if s.publisher != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  events.EmployeeCreatedEventType,
			EmployeeID: e.ID,
			Email:      e.Email,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.publisher.PublishEmployeeCreated(ctx, event); err != nil {
			s.logger.Warn("publish employee created failed",
				zap.String("employee_id", e.ID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID),
		zap.String("email", e.Email),
	)
	return mapToResponse(e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.StoreFailure(err, "scan employees")
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	updated := *current
	updated.FirstName = req.FirstName
	updated.LastName = req.LastName
	updated.ICPassport = req.ICPassport

	// Rewrite in place: email, role and credentials carry over untouched.
	if err := s.repo.Delete(ctx, id); err != nil {
		return EmployeeResponse{}, apperror.StoreFailure(err, "delete employee for rewrite")
	}
	if err := s.repo.Create(ctx, updated); err != nil {
		s.logger.Error("employee rewrite lost after delete",
			zap.String("employee_id", id),
			zap.String("email", current.Email),
			zap.Error(err),
		)
		return EmployeeResponse{}, apperror.StoreFailure(err, "recreate employee")
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.StoreFailure(err, "delete employee")
	}

	// Payroll records follow the employee out; leave history is kept for
	// auditing.
	if s.purger != nil {
		if err := s.purger.DeleteByEmployee(ctx, id); err != nil {
			s.logger.Error("delete employee payroll cascade failed",
				zap.String("employee_id", id),
				zap.Error(err),
			)
			return err
		}
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) EmailByEmployeeID(ctx context.Context, employeeID string) (string, error) {
	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return "", err
	}
	return e.Email, nil
}
