package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// Resources and actions referenced by the route tables.
const (
	ResourceEmployee = "employee"
	ResourcePayroll  = "payroll"
	ResourceLeave    = "leave"
	ResourceBalance  = "balance"
	ResourceReport   = "report"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionReadAll = "read-all"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionDecide  = "decide"
)

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies maps each role to the resource/action pairs it may perform.
// HR inherits everything an employee can do via the grouping policy.
var policies = [][3]string{
	{RoleHR, ResourceEmployee, ActionCreate},
	{RoleHR, ResourceEmployee, ActionRead},
	{RoleHR, ResourceEmployee, ActionReadAll},
	{RoleHR, ResourceEmployee, ActionUpdate},
	{RoleHR, ResourceEmployee, ActionDelete},
	{RoleHR, ResourcePayroll, ActionCreate},
	{RoleHR, ResourcePayroll, ActionReadAll},
	{RoleHR, ResourcePayroll, ActionUpdate},
	{RoleHR, ResourcePayroll, ActionDelete},
	{RoleHR, ResourceLeave, ActionReadAll},
	{RoleHR, ResourceLeave, ActionDecide},
	{RoleHR, ResourceBalance, ActionReadAll},
	{RoleHR, ResourceBalance, ActionUpdate},
	{RoleHR, ResourceReport, ActionRead},

	{RoleEmployee, ResourceLeave, ActionCreate},
	{RoleEmployee, ResourceLeave, ActionRead},
	{RoleEmployee, ResourceBalance, ActionRead},
	{RoleEmployee, ResourcePayroll, ActionRead},
	{RoleEmployee, ResourceEmployee, ActionRead},
}

func NewService(logger *zap.Logger) (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	if _, err := enforcer.AddGroupingPolicy(RoleHR, RoleEmployee); err != nil {
		return nil, err
	}

	return &service{
		enforcer: enforcer,
		logger:   logger.Named("rbac"),
	}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err))
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed))

	return allowed, nil
}
