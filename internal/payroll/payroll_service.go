package payroll

import (
	"context"
	"errors"
	"time"

	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/idgen"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context) ([]PayrollResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
	// DeleteByEmployee removes all records for one employee. Used by the
	// employee delete cascade.
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	s.logger.Debug("create payroll requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
		zap.Int("year", req.Year),
	)

	if !isValidMonth(req.Month) {
		return PayrollResponse{}, payrollerrors.ErrInvalidMonth
	}
	if req.Year < 1900 || req.Year > 2100 {
		return PayrollResponse{}, payrollerrors.ErrInvalidYear
	}

	basic, allowances, deductions, err := parseAmounts(req.BasicSalary, req.Allowances, req.Deductions)
	if err != nil {
		return PayrollResponse{}, err
	}

	// One record per employee per period.
	if _, err := s.repo.FindByPeriod(ctx, req.EmployeeID, req.Month, req.Year); err == nil {
		s.logger.Warn("create payroll duplicate period",
			zap.String("employee_id", req.EmployeeID),
			zap.String("month", req.Month),
			zap.Int("year", req.Year),
		)
		return PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
	} else if !errors.Is(err, payrollerrors.ErrPayrollNotFound) {
		return PayrollResponse{}, apperror.StoreFailure(err, "scan payrolls")
	}

	p := Payroll{
		ID:          idgen.NewID("payroll"),
		EmployeeID:  req.EmployeeID,
		Month:       req.Month,
		Year:        req.Year,
		BasicSalary: basic,
		Allowances:  allowances,
		Deductions:  deductions,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create payroll persist failed", zap.Error(err))
		return PayrollResponse{}, apperror.StoreFailure(err, "create payroll")
	}

	s.logger.Info("create payroll success",
		zap.String("payroll_id", p.ID),
		zap.String("employee_id", p.EmployeeID),
	)
	return mapToResponse(p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.StoreFailure(err, "scan payrolls")
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.StoreFailure(err, "scan payrolls")
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	s.logger.Debug("update payroll requested", zap.String("payroll_id", id))

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}

	basic, allowances, deductions, err := parseAmounts(req.BasicSalary, req.Allowances, req.Deductions)
	if err != nil {
		return PayrollResponse{}, err
	}

	updated := *current
	updated.BasicSalary = basic
	updated.Allowances = allowances
	updated.Deductions = deductions

	if err := s.repo.Delete(ctx, id); err != nil {
		return PayrollResponse{}, apperror.StoreFailure(err, "delete payroll for rewrite")
	}
	if err := s.repo.Create(ctx, updated); err != nil {
		s.logger.Error("payroll rewrite lost after delete",
			zap.String("payroll_id", id),
			zap.String("employee_id", current.EmployeeID),
			zap.Error(err),
		)
		return PayrollResponse{}, apperror.StoreFailure(err, "recreate payroll")
	}

	s.logger.Info("update payroll success", zap.String("payroll_id", id))
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.StoreFailure(err, "delete payroll")
	}
	s.logger.Info("delete payroll success", zap.String("payroll_id", id))
	return nil
}

func (s *service) DeleteByEmployee(ctx context.Context, employeeID string) error {
	payrolls, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return apperror.StoreFailure(err, "scan payrolls")
	}

	for _, p := range payrolls {
		if err := s.repo.Delete(ctx, p.ID); err != nil {
			return apperror.StoreFailure(err, "delete payroll")
		}
	}

	s.logger.Info("payrolls purged for employee",
		zap.String("employee_id", employeeID),
		zap.Int("count", len(payrolls)),
	)
	return nil
}

func isValidMonth(month string) bool {
	if len(month) != 2 {
		return false
	}
	switch month {
	case "01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12":
		return true
	default:
		return false
	}
}

func parseAmounts(basicStr, allowancesStr, deductionsStr string) (basic, allowances, deductions decimal.Decimal, err error) {
	basic, err = parseAmount(basicStr)
	if err != nil {
		return
	}
	allowances, err = parseOptionalAmount(allowancesStr)
	if err != nil {
		return
	}
	deductions, err = parseOptionalAmount(deductionsStr)
	return
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, payrollerrors.ErrInvalidAmount
	}
	return d, nil
}

func parseOptionalAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return parseAmount(s)
}
