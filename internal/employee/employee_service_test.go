package employee_test

import (
	"context"
	"testing"

	"go-hrms/internal/balance"
	"go-hrms/internal/docstore"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeePublisher struct {
	published []events.EmployeeCreatedEvent
}

func (f *fakeEmployeePublisher) PublishEmployeeCreated(_ context.Context, event events.EmployeeCreatedEvent) error {
	f.published = append(f.published, event)
	return nil
}

type fakePurger struct {
	deleted []string
}

func (f *fakePurger) DeleteByEmployee(_ context.Context, employeeID string) error {
	f.deleted = append(f.deleted, employeeID)
	return nil
}

type employeeFixture struct {
	service   employee.Service
	repo      employee.Repository
	ledger    balance.Ledger
	publisher *fakeEmployeePublisher
	purger    *fakePurger
}

func newEmployeeFixture() employeeFixture {
	store := docstore.NewMemoryClient()
	repo := employee.NewRepository(store)
	ledger := balance.NewLedger(balance.NewRepository(store), zap.NewNop())
	publisher := &fakeEmployeePublisher{}
	purger := &fakePurger{}
	service := employee.NewService(repo, ledger, publisher, purger, zap.NewNop())
	return employeeFixture{service: service, repo: repo, ledger: ledger, publisher: publisher, purger: purger}
}

func createRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Lim",
		ICPassport: "A1234567",
		Role:       "employee",
		Password:   "s3cret-pass",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newEmployeeFixture()

		resp, err := f.service.Create(ctx, createRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "jane@example.com", resp.Email)

		// Password is hashed, never stored raw.
		stored, err := f.repo.FindByID(ctx, resp.ID)
		assert.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))

		// A balance is allocated at hire time.
		bal, err := f.ledger.View(ctx, resp.ID)
		assert.NoError(t, err)
		assert.Equal(t, balance.DefaultAllocation, bal.Annual)

		if assert.Len(t, f.publisher.published, 1) {
			assert.Equal(t, resp.ID, f.publisher.published[0].EmployeeID)
		}
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		f := newEmployeeFixture()

		_, err := f.service.Create(ctx, createRequest())
		assert.NoError(t, err)

		req := createRequest()
		req.Email = "JANE@example.com"
		_, err = f.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
	})

	t.Run("negative bad role", func(t *testing.T) {
		f := newEmployeeFixture()

		req := createRequest()
		req.Role = "admin"
		_, err := f.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	created, err := f.service.Create(ctx, createRequest())
	assert.NoError(t, err)

	resp, err := f.service.Update(ctx, created.ID, employee.UpdateEmployeeRequest{
		FirstName:  "Janet",
		LastName:   "Lim",
		ICPassport: "B7654321",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Janet", resp.FirstName)
	assert.Equal(t, "B7654321", resp.ICPassport)

	// Credentials survive the rewrite.
	stored, err := f.repo.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", stored.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success cascades payroll", func(t *testing.T) {
		f := newEmployeeFixture()

		created, err := f.service.Create(ctx, createRequest())
		assert.NoError(t, err)

		assert.NoError(t, f.service.Delete(ctx, created.ID))

		_, err = f.service.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.Equal(t, []string{created.ID}, f.purger.deleted)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		f := newEmployeeFixture()

		err := f.service.Delete(ctx, "missing")
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestService_EmailByEmployeeID(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	created, err := f.service.Create(ctx, createRequest())
	assert.NoError(t, err)

	email, err := f.service.EmailByEmployeeID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)
}
