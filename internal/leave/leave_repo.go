package leave

import (
	"context"
	"errors"
	"sort"

	"go-hrms/internal/docstore"
	leaveerrors "go-hrms/internal/leave/errors"
)

type Repository interface {
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindAllByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
	// RewriteStatus replaces the stored document with the same request in
	// a new status. It refuses to touch a request that is no longer
	// Pending.
	RewriteStatus(ctx context.Context, id, newStatus string) (*LeaveRequest, error)
}

type repository struct {
	store docstore.Client
}

func NewRepository(store docstore.Client) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.store.Create(ctx, Collection, l.ID, toFields(*l))
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	l := fromFields(doc.ID, doc.Fields)
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	return r.findFiltered(ctx, func(LeaveRequest) bool { return true })
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return r.findFiltered(ctx, func(l LeaveRequest) bool { return l.EmployeeID == employeeID })
}

func (r *repository) FindAllByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	return r.findFiltered(ctx, func(l LeaveRequest) bool { return l.Status == status })
}

// findFiltered scans the whole collection and filters in memory; the
// store has no query support.
func (r *repository) findFiltered(ctx context.Context, keep func(LeaveRequest) bool) ([]LeaveRequest, error) {
	docs, err := r.store.Scan(ctx, Collection)
	if err != nil {
		return nil, err
	}

	leaves := make([]LeaveRequest, 0, len(docs))
	for _, doc := range docs {
		l := fromFields(doc.ID, doc.Fields)
		if keep(l) {
			leaves = append(leaves, l)
		}
	}

	sort.Slice(leaves, func(i, j int) bool {
		return leaves[i].CreatedAt.After(leaves[j].CreatedAt)
	})
	return leaves, nil
}

func (r *repository) RewriteStatus(ctx context.Context, id, newStatus string) (*LeaveRequest, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	l := fromFields(doc.ID, doc.Fields)
	if l.Status != StatusPending {
		return nil, leaveerrors.ErrRequestNotPending
	}
	l.Status = newStatus

	// No update primitive: rewrite by delete then create under the same
	// id. The Pending re-check above is the last guard before the delete.
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return nil, err
	}
	if err := r.store.Create(ctx, Collection, id, toFields(l)); err != nil {
		return nil, err
	}
	return &l, nil
}

func toFields(l LeaveRequest) docstore.Fields {
	return docstore.Fields{
		"employeeId": l.EmployeeID,
		"leaveType":  l.LeaveType,
		"startDate":  l.StartDate,
		"endDate":    l.EndDate,
		"totalDays":  l.TotalDays,
		"reason":     l.Reason,
		"status":     l.Status,
		"createdAt":  l.CreatedAt,
	}
}

func fromFields(id string, f docstore.Fields) LeaveRequest {
	return LeaveRequest{
		ID:         id,
		EmployeeID: docstore.String(f, "employeeId"),
		LeaveType:  docstore.String(f, "leaveType"),
		StartDate:  docstore.String(f, "startDate"),
		EndDate:    docstore.String(f, "endDate"),
		TotalDays:  docstore.Int(f, "totalDays"),
		Reason:     docstore.String(f, "reason"),
		Status:     docstore.String(f, "status"),
		CreatedAt:  docstore.Time(f, "createdAt"),
	}
}
