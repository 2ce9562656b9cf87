package employee

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go-hrms/internal/docstore"
	employeeerrors "go-hrms/internal/employee/errors"
)

type Repository interface {
	Create(ctx context.Context, e Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store docstore.Client
}

func NewRepository(store docstore.Client) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, e Employee) error {
	return r.store.Create(ctx, Collection, e.ID, toFields(e))
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	e := fromFields(doc.ID, doc.Fields)
	return &e, nil
}

// FindByEmail scans the collection; email is compared case-insensitively.
func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	docs, err := r.store.Scan(ctx, Collection)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(email))
	for _, doc := range docs {
		if strings.ToLower(docstore.String(doc.Fields, "email")) == needle {
			e := fromFields(doc.ID, doc.Fields)
			return &e, nil
		}
	}
	return nil, employeeerrors.ErrEmployeeNotFound
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	docs, err := r.store.Scan(ctx, Collection)
	if err != nil {
		return nil, err
	}

	employees := make([]Employee, 0, len(docs))
	for _, doc := range docs {
		employees = append(employees, fromFields(doc.ID, doc.Fields))
	}

	sort.Slice(employees, func(i, j int) bool {
		return employees[i].Email < employees[j].Email
	})
	return employees, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil
	}
	return err
}

func toFields(e Employee) docstore.Fields {
	return docstore.Fields{
		"email":        e.Email,
		"firstName":    e.FirstName,
		"lastName":     e.LastName,
		"icPassport":   e.ICPassport,
		"role":         e.Role,
		"passwordHash": e.PasswordHash,
		"createdAt":    e.CreatedAt,
	}
}

func fromFields(id string, f docstore.Fields) Employee {
	return Employee{
		ID:           id,
		Email:        docstore.String(f, "email"),
		FirstName:    docstore.String(f, "firstName"),
		LastName:     docstore.String(f, "lastName"),
		ICPassport:   docstore.String(f, "icPassport"),
		Role:         docstore.String(f, "role"),
		PasswordHash: docstore.String(f, "passwordHash"),
		CreatedAt:    docstore.Time(f, "createdAt"),
	}
}
