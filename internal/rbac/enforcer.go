package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

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

//go:generate mockgen -source=enforcer.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Allowed(role, resource, action string) bool
}

type service struct {
	enforcer *casbin.Enforcer
}

// NewService compiles the static capability table into a casbin
// enforcer. The policy never changes at runtime, so Allowed is a pure
// function of its inputs.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for _, g := range roleInheritance {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	for _, c := range capabilities {
		if _, err := e.AddPolicy(c.role, c.resource, c.action); err != nil {
			return nil, err
		}
	}
	return &service{enforcer: e}, nil
}

func (s *service) Allowed(role, resource, action string) bool {
	role = NormalizeRole(role)
	if !IsValidRole(role) {
		return false
	}
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		return false
	}
	return allowed
}
