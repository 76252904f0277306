package session

import "github.com/Rullyeff/imo-mantap-sehat-app/domain"

// View paths the guard redirects to. These are the literal route targets
// of the front end.
const (
	PathLogin       = "/login"
	PathPatientHome = "/patient-dashboard"
	PathNurseHome   = "/nurse-dashboard"
	PathAdminHome   = "/admin-dashboard"
)

// Decision is the outcome of a route-guard evaluation.
type Decision int

const (
	// DecisionChecking means the bootstrap is still in flight: render a
	// waiting indicator, neither the guarded content nor a redirect.
	DecisionChecking Decision = iota
	// DecisionRedirectLogin means no session is present.
	DecisionRedirectLogin
	// DecisionRedirectRoleHome means the session's role may not view the
	// route; send it to its own dashboard.
	DecisionRedirectRoleHome
	// DecisionAllowed renders the guarded content.
	DecisionAllowed
)

func (d Decision) String() string {
	switch d {
	case DecisionChecking:
		return "checking"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectRoleHome:
		return "redirect-role-home"
	case DecisionAllowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// RouteDecision carries the decision plus the redirect target. From is
// the originally requested location, attached to login redirects so the
// login flow can return the user afterward.
type RouteDecision struct {
	Decision Decision
	Target   string
	From     string
}

// RoleHome maps a role to its dashboard. Unknown roles go to login.
func RoleHome(role domain.Role) string {
	switch role {
	case domain.RolePatient:
		return PathPatientHome
	case domain.RoleNurse:
		return PathNurseHome
	case domain.RoleAdmin:
		return PathAdminHome
	case domain.RoleUnknown:
		return PathLogin
	default:
		return PathLogin
	}
}

// EvaluateRoute decides whether the current auth state may render a route
// requiring the given roles. It is a pure function of its inputs and is
// re-evaluated whenever any of them change, since loading and role may
// settle after the first render. An empty required set admits any
// authenticated identity.
func EvaluateRoute(state AuthState, from string, required []domain.Role) RouteDecision {
	if state.Loading {
		return RouteDecision{Decision: DecisionChecking}
	}

	if state.Session == nil {
		return RouteDecision{Decision: DecisionRedirectLogin, Target: PathLogin, From: from}
	}

	if len(required) == 0 {
		return RouteDecision{Decision: DecisionAllowed}
	}

	for _, role := range required {
		if state.Role == role && state.Role.Known() {
			return RouteDecision{Decision: DecisionAllowed}
		}
	}

	return RouteDecision{Decision: DecisionRedirectRoleHome, Target: RoleHome(state.Role)}
}
