package services

import (
	"github.com/casbin/casbin/v2"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
	}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// CasbinSubject maps a role to the subject string stored in the policy
// table.
func CasbinSubject(role domain.Role) string {
	return "role_" + string(role)
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	_, err := p.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	_, err := p.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

// SeedDefaultPolicies installs the role-to-area grants when the policy
// table is empty: each role owns its own URL area and every role may
// manage its session. Existing policies are left untouched.
func SeedDefaultPolicies(svc domain.PolicyService) error {
	if len(svc.GetPolicies()) > 0 {
		return nil
	}

	defaults := [][3]string{
		{CasbinSubject(domain.RoleAdmin), "/admin/*", "(GET|POST|PUT|DELETE)"},
		{CasbinSubject(domain.RolePatient), "/patient/*", "(GET|POST)"},
		{CasbinSubject(domain.RoleNurse), "/nurse/*", "(GET|POST)"},
	}
	for _, role := range []domain.Role{domain.RolePatient, domain.RoleNurse, domain.RoleAdmin} {
		defaults = append(defaults,
			[3]string{CasbinSubject(role), "/auth/me", "GET"},
			[3]string{CasbinSubject(role), "/auth/logout", "POST"},
		)
	}

	for _, d := range defaults {
		if err := svc.AddPolicy(d[0], d[1], d[2]); err != nil {
			return err
		}
	}
	return nil
}
