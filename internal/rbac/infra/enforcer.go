package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// ModelText grants a request when the principal has access to the app and a
// policy matches the view, the resource (type/id with * as a wildcard) and
// the action.
const ModelText = `[request_definition]
r = sub, app, view, obj, act

[policy_definition]
p = sub, app, view, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, r.app) && r.sub == p.sub && r.app == p.app && (p.view == "*" || r.view == p.view) && keyMatch(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(ModelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}

// NewEnforcerFromFile loads a model file instead of the built-in model.
func NewEnforcerFromFile(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
