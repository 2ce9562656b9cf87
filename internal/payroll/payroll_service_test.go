package payroll_test

import (
	"context"
	"testing"

	"go-hrms/internal/docstore"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newPayrollService() payroll.Service {
	store := docstore.NewMemoryClient()
	return payroll.NewService(payroll.NewRepository(store), zap.NewNop())
}

func createPayrollRequest() payroll.CreatePayrollRequest {
	return payroll.CreatePayrollRequest{
		EmployeeID:  "emp-1",
		Month:       "08",
		Year:        2026,
		BasicSalary: "3500.00",
		Allowances:  "250.50",
		Deductions:  "120.00",
	}
}

func TestService_CreatePayroll(t *testing.T) {
	ctx := context.Background()

	t.Run("success computes net salary", func(t *testing.T) {
		svc := newPayrollService()

		resp, err := svc.Create(ctx, createPayrollRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "3630.50", resp.NetSalary)
	})

	t.Run("negative duplicate period", func(t *testing.T) {
		svc := newPayrollService()

		_, err := svc.Create(ctx, createPayrollRequest())
		assert.NoError(t, err)

		_, err = svc.Create(ctx, createPayrollRequest())
		assert.ErrorIs(t, err, payrollerrors.ErrDuplicatePeriod)
	})

	t.Run("success same period different employee", func(t *testing.T) {
		svc := newPayrollService()

		_, err := svc.Create(ctx, createPayrollRequest())
		assert.NoError(t, err)

		req := createPayrollRequest()
		req.EmployeeID = "emp-2"
		_, err = svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("negative bad month", func(t *testing.T) {
		svc := newPayrollService()

		req := createPayrollRequest()
		req.Month = "13"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)

		req.Month = "8"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
	})

	t.Run("negative year out of range", func(t *testing.T) {
		svc := newPayrollService()

		req := createPayrollRequest()
		req.Year = 2101
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidYear)
	})

	t.Run("negative negative amount", func(t *testing.T) {
		svc := newPayrollService()

		req := createPayrollRequest()
		req.Deductions = "-10.00"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidAmount)
	})
}

func TestService_UpdatePayroll(t *testing.T) {
	ctx := context.Background()
	svc := newPayrollService()

	created, err := svc.Create(ctx, createPayrollRequest())
	assert.NoError(t, err)

	resp, err := svc.Update(ctx, created.ID, payroll.UpdatePayrollRequest{
		BasicSalary: "4000.00",
		Allowances:  "0",
		Deductions:  "0",
	})

	assert.NoError(t, err)
	assert.Equal(t, "4000.00", resp.NetSalary)
	// Period fields survive the rewrite.
	assert.Equal(t, "08", resp.Month)
	assert.Equal(t, 2026, resp.Year)
}

func TestService_DeleteByEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newPayrollService()

	_, err := svc.Create(ctx, createPayrollRequest())
	assert.NoError(t, err)

	second := createPayrollRequest()
	second.Month = "09"
	_, err = svc.Create(ctx, second)
	assert.NoError(t, err)

	other := createPayrollRequest()
	other.EmployeeID = "emp-2"
	_, err = svc.Create(ctx, other)
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteByEmployee(ctx, "emp-1"))

	mine, err := svc.GetByEmployee(ctx, "emp-1")
	assert.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := svc.GetByEmployee(ctx, "emp-2")
	assert.NoError(t, err)
	assert.Len(t, theirs, 1)
}
