package leave_test

import (
	"context"
	"testing"

	"go-hrms/internal/balance"
	"go-hrms/internal/docstore"
	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePublisher struct {
	published []events.LeaveDecidedEvent
	err       error
}

func (f *fakePublisher) PublishLeaveDecided(_ context.Context, event events.LeaveDecidedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

type fixture struct {
	service   leave.Service
	ledger    balance.Ledger
	publisher *fakePublisher
	store     docstore.Client
}

func newFixture() fixture {
	store := docstore.NewMemoryClient()
	ledger := balance.NewLedger(balance.NewRepository(store), zap.NewNop())
	publisher := &fakePublisher{}
	service := leave.NewService(leave.NewRepository(store), ledger, publisher, zap.NewNop())
	return fixture{service: service, ledger: ledger, publisher: publisher, store: store}
}

func validRequest() leave.ApplyLeaveRequest {
	return leave.ApplyLeaveRequest{
		LeaveType: "annual",
		StartDate: "2026-09-07",
		EndDate:   "2026-09-09",
		TotalDays: 3,
		Reason:    "family trip",
	}
}

func TestService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture()

		resp, err := f.service.Apply(ctx, "emp-1", validRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "emp-1", resp.EmployeeID)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)

		// Applying also allocates the current-year balance.
		bal, err := f.ledger.View(ctx, "emp-1")
		assert.NoError(t, err)
		assert.Equal(t, balance.DefaultAllocation, bal.Annual)
	})

	t.Run("success leave type is canonicalized", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.LeaveType = "  Medical "

		resp, err := f.service.Apply(ctx, "emp-1", req)

		assert.NoError(t, err)
		assert.Equal(t, "medical", resp.LeaveType)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.LeaveType = "sabbatical"

		_, err := f.service.Apply(ctx, "emp-1", req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})

	t.Run("negative malformed date", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.StartDate = "07-09-2026"

		_, err := f.service.Apply(ctx, "emp-1", req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative month out of range", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.EndDate = "2026-13-01"

		_, err := f.service.Apply(ctx, "emp-1", req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative zero total days", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.TotalDays = 0

		_, err := f.service.Apply(ctx, "emp-1", req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidTotalDays)
	})

	t.Run("negative blank reason", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.Reason = "   "

		_, err := f.service.Apply(ctx, "emp-1", req)
		assert.ErrorIs(t, err, leaveerrors.ErrReasonRequired)
	})

	t.Run("negative blank employee id", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Apply(ctx, "", validRequest())
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("success deducts balance and flips status", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.LeaveType = "medical"
		applied, err := f.service.Apply(ctx, "emp-1", req)
		assert.NoError(t, err)

		resp, err := f.service.Approve(ctx, "hr-1", applied.ID)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Leave.Status)
		if assert.NotNil(t, resp.RemainingBalance) {
			assert.Equal(t, 7, *resp.RemainingBalance)
		}

		bal, err := f.ledger.View(ctx, "emp-1")
		assert.NoError(t, err)
		assert.Equal(t, 7, bal.Medical)
		assert.Equal(t, balance.DefaultAllocation, bal.Annual)

		if assert.Len(t, f.publisher.published, 1) {
			assert.Equal(t, events.LeaveApprovedEventType, f.publisher.published[0].EventType)
			assert.Equal(t, applied.ID, f.publisher.published[0].LeaveID)
		}
	})

	t.Run("negative second approval leaves balance untouched", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.LeaveType = "medical"
		applied, err := f.service.Apply(ctx, "emp-1", req)
		assert.NoError(t, err)

		_, err = f.service.Approve(ctx, "hr-1", applied.ID)
		assert.NoError(t, err)

		_, err = f.service.Approve(ctx, "hr-1", applied.ID)
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyApproved)

		bal, err := f.ledger.View(ctx, "emp-1")
		assert.NoError(t, err)
		assert.Equal(t, 7, bal.Medical)
	})

	t.Run("negative insufficient balance keeps request pending", func(t *testing.T) {
		f := newFixture()

		// Burn the annual allocation down to 3 days.
		_, err := f.ledger.Deduct(ctx, "emp-1", balance.TypeAnnual, 7)
		assert.NoError(t, err)

		req := validRequest()
		req.TotalDays = 4
		applied, err := f.service.Apply(ctx, "emp-1", req)
		assert.NoError(t, err)

		_, err = f.service.Approve(ctx, "hr-1", applied.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "requested 4 day(s), 3 remaining")

		// Request stays pending, balance unchanged.
		pending, err := f.service.GetPending(ctx)
		assert.NoError(t, err)
		assert.Len(t, pending, 1)

		bal, err := f.ledger.View(ctx, "emp-1")
		assert.NoError(t, err)
		assert.Equal(t, 3, bal.Annual)
	})

	t.Run("negative unknown leave id", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Approve(ctx, "hr-1", "leave_missing")
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative rejected request cannot be approved", func(t *testing.T) {
		f := newFixture()

		applied, err := f.service.Apply(ctx, "emp-1", validRequest())
		assert.NoError(t, err)

		_, err = f.service.Reject(ctx, "hr-1", applied.ID)
		assert.NoError(t, err)

		_, err = f.service.Approve(ctx, "hr-1", applied.ID)
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyRejected)
	})
}

func TestService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("success does not touch balance", func(t *testing.T) {
		f := newFixture()

		applied, err := f.service.Apply(ctx, "emp-1", validRequest())
		assert.NoError(t, err)

		resp, err := f.service.Reject(ctx, "hr-1", applied.ID)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Leave.Status)
		assert.Nil(t, resp.RemainingBalance)

		bal, err := f.ledger.View(ctx, "emp-1")
		assert.NoError(t, err)
		assert.Equal(t, balance.DefaultAllocation, bal.Annual)

		if assert.Len(t, f.publisher.published, 1) {
			assert.Equal(t, events.LeaveRejectedEventType, f.publisher.published[0].EventType)
		}
	})

	t.Run("negative double reject", func(t *testing.T) {
		f := newFixture()

		applied, err := f.service.Apply(ctx, "emp-1", validRequest())
		assert.NoError(t, err)

		_, err = f.service.Reject(ctx, "hr-1", applied.ID)
		assert.NoError(t, err)

		_, err = f.service.Reject(ctx, "hr-1", applied.ID)
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyRejected)
	})
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("pending list shrinks after decisions", func(t *testing.T) {
		f := newFixture()

		first, err := f.service.Apply(ctx, "emp-1", validRequest())
		assert.NoError(t, err)
		_, err = f.service.Apply(ctx, "emp-2", validRequest())
		assert.NoError(t, err)

		pending, err := f.service.GetPending(ctx)
		assert.NoError(t, err)
		assert.Len(t, pending, 2)

		_, err = f.service.Approve(ctx, "hr-1", first.ID)
		assert.NoError(t, err)

		pending, err = f.service.GetPending(ctx)
		assert.NoError(t, err)
		assert.Len(t, pending, 1)
		assert.Equal(t, "emp-2", pending[0].EmployeeID)
	})

	t.Run("by employee filters others out", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Apply(ctx, "emp-1", validRequest())
		assert.NoError(t, err)
		_, err = f.service.Apply(ctx, "emp-2", validRequest())
		assert.NoError(t, err)

		mine, err := f.service.GetByEmployee(ctx, "emp-1")
		assert.NoError(t, err)
		assert.Len(t, mine, 1)
		assert.Equal(t, "emp-1", mine[0].EmployeeID)
	})
}

func TestService_ApproveSpendsDownToFloor(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// Two requests of 5 annual days each exhaust the allocation; a third
	// day cannot be approved.
	for i := 0; i < 2; i++ {
		req := validRequest()
		req.TotalDays = 5
		applied, err := f.service.Apply(ctx, "emp-1", req)
		assert.NoError(t, err)

		_, err = f.service.Approve(ctx, "hr-1", applied.ID)
		assert.NoError(t, err)
	}

	req := validRequest()
	req.TotalDays = 1
	applied, err := f.service.Apply(ctx, "emp-1", req)
	assert.NoError(t, err)

	_, err = f.service.Approve(ctx, "hr-1", applied.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requested 1 day(s), 0 remaining")
}
