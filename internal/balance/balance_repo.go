package balance

import (
	"context"
	"errors"

	"go-hrms/internal/docstore"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*Balance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
	Create(ctx context.Context, b Balance) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store docstore.Client
}

func NewRepository(store docstore.Client) Repository {
	return &repository{store: store}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Balance, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, err
	}
	b := fromFields(doc.ID, doc.Fields)
	return &b, nil
}

// FindByEmployee scans the whole collection and filters in memory. The
// store exposes no secondary index, so this is the only lookup path.
func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Balance, error) {
	docs, err := r.store.Scan(ctx, Collection)
	if err != nil {
		return nil, err
	}

	balances := make([]Balance, 0, 1)
	for _, doc := range docs {
		if docstore.String(doc.Fields, "employeeId") != employeeID {
			continue
		}
		balances = append(balances, fromFields(doc.ID, doc.Fields))
	}
	return balances, nil
}

func (r *repository) Create(ctx context.Context, b Balance) error {
	return r.store.Create(ctx, Collection, b.ID, toFields(b))
}

func (r *repository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil
	}
	return err
}

func toFields(b Balance) docstore.Fields {
	return docstore.Fields{
		"employeeId": b.EmployeeID,
		"year":       b.Year,
		"annual":     b.Annual,
		"emergency":  b.Emergency,
		"medical":    b.Medical,
	}
}

func fromFields(id string, f docstore.Fields) Balance {
	return Balance{
		ID:         id,
		EmployeeID: docstore.String(f, "employeeId"),
		Year:       docstore.Int(f, "year"),
		Annual:     docstore.Int(f, "annual"),
		Emergency:  docstore.Int(f, "emergency"),
		Medical:    docstore.Int(f, "medical"),
	}
}
