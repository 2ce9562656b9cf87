package payroll

import (
	"context"
	"errors"
	"sort"

	"go-hrms/internal/docstore"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, p Payroll) error
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindAll(ctx context.Context) ([]Payroll, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Payroll, error)
	FindByPeriod(ctx context.Context, employeeID, month string, year int) (*Payroll, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store docstore.Client
}

func NewRepository(store docstore.Client) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, p Payroll) error {
	return r.store.Create(ctx, Collection, p.ID, toFields(p))
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}
	p := fromFields(doc.ID, doc.Fields)
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Payroll, error) {
	return r.findFiltered(ctx, func(Payroll) bool { return true })
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	return r.findFiltered(ctx, func(p Payroll) bool { return p.EmployeeID == employeeID })
}

func (r *repository) FindByPeriod(ctx context.Context, employeeID, month string, year int) (*Payroll, error) {
	matches, err := r.findFiltered(ctx, func(p Payroll) bool {
		return p.EmployeeID == employeeID && p.Month == month && p.Year == year
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	return &matches[0], nil
}

func (r *repository) findFiltered(ctx context.Context, keep func(Payroll) bool) ([]Payroll, error) {
	docs, err := r.store.Scan(ctx, Collection)
	if err != nil {
		return nil, err
	}

	payrolls := make([]Payroll, 0, len(docs))
	for _, doc := range docs {
		p := fromFields(doc.ID, doc.Fields)
		if keep(p) {
			payrolls = append(payrolls, p)
		}
	}

	// Newest period first.
	sort.Slice(payrolls, func(i, j int) bool {
		if payrolls[i].Year != payrolls[j].Year {
			return payrolls[i].Year > payrolls[j].Year
		}
		return payrolls[i].Month > payrolls[j].Month
	})
	return payrolls, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil
	}
	return err
}

func toFields(p Payroll) docstore.Fields {
	return docstore.Fields{
		"employeeId":  p.EmployeeID,
		"month":       p.Month,
		"year":        p.Year,
		"basicSalary": p.BasicSalary.String(),
		"allowances":  p.Allowances.String(),
		"deductions":  p.Deductions.String(),
		"createdAt":   p.CreatedAt,
	}
}

func fromFields(id string, f docstore.Fields) Payroll {
	basic, _ := decimal.NewFromString(docstore.String(f, "basicSalary"))
	allowances, _ := decimal.NewFromString(docstore.String(f, "allowances"))
	deductions, _ := decimal.NewFromString(docstore.String(f, "deductions"))

	return Payroll{
		ID:          id,
		EmployeeID:  docstore.String(f, "employeeId"),
		Month:       docstore.String(f, "month"),
		Year:        docstore.Int(f, "year"),
		BasicSalary: basic,
		Allowances:  allowances,
		Deductions:  deductions,
		CreatedAt:   docstore.Time(f, "createdAt"),
	}
}
