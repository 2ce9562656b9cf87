package leave_test

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/docstore"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func storedLeave(id, employeeID, status string, createdAt time.Time) *leave.LeaveRequest {
	return &leave.LeaveRequest{
		ID:         id,
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		TotalDays:  3,
		Reason:     "family trip",
		Status:     status,
		CreatedAt:  createdAt,
	}
}

func TestRepository_RewriteStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		store := docstore.NewMemoryClient()
		repo := leave.NewRepository(store)

		assert.NoError(t, repo.Create(ctx, storedLeave("leave_1", "emp-1", leave.StatusPending, time.Now().UTC())))

		updated, err := repo.RewriteStatus(ctx, "leave_1", leave.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, updated.Status)

		// The rewrite keeps the rest of the document intact.
		reread, err := repo.FindByID(ctx, "leave_1")
		assert.NoError(t, err)
		assert.Equal(t, "emp-1", reread.EmployeeID)
		assert.Equal(t, 3, reread.TotalDays)
		assert.Equal(t, leave.StatusApproved, reread.Status)
	})

	t.Run("negative already decided", func(t *testing.T) {
		store := docstore.NewMemoryClient()
		repo := leave.NewRepository(store)

		assert.NoError(t, repo.Create(ctx, storedLeave("leave_1", "emp-1", leave.StatusRejected, time.Now().UTC())))

		_, err := repo.RewriteStatus(ctx, "leave_1", leave.StatusApproved)
		assert.ErrorIs(t, err, leaveerrors.ErrRequestNotPending)

		// The stored document is untouched.
		reread, readErr := repo.FindByID(ctx, "leave_1")
		assert.NoError(t, readErr)
		assert.Equal(t, leave.StatusRejected, reread.Status)
	})

	t.Run("negative missing request", func(t *testing.T) {
		store := docstore.NewMemoryClient()
		repo := leave.NewRepository(store)

		_, err := repo.RewriteStatus(ctx, "leave_missing", leave.StatusApproved)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestRepository_Queries(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryClient()
	repo := leave.NewRepository(store)

	base := time.Now().UTC().Add(-time.Hour)
	assert.NoError(t, repo.Create(ctx, storedLeave("leave_1", "emp-1", leave.StatusPending, base)))
	assert.NoError(t, repo.Create(ctx, storedLeave("leave_2", "emp-2", leave.StatusApproved, base.Add(time.Minute))))
	assert.NoError(t, repo.Create(ctx, storedLeave("leave_3", "emp-1", leave.StatusPending, base.Add(2*time.Minute))))

	t.Run("all newest first", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, "leave_3", all[0].ID)
	})

	t.Run("by employee", func(t *testing.T) {
		mine, err := repo.FindAllByEmployee(ctx, "emp-1")
		assert.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("by status", func(t *testing.T) {
		pending, err := repo.FindAllByStatus(ctx, leave.StatusPending)
		assert.NoError(t, err)
		assert.Len(t, pending, 2)
	})
}
