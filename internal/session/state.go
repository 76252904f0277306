// Package session implements the client-side session layer: the auth
// state store, role/profile resolution, the sign-in/sign-up/sign-out
// façade, and the route-guard decisions that gate role-based views. It is
// a library contract over a narrow Backend interface; the HTTP server in
// this repository is one such backend.
package session

import "github.com/Rullyeff/imo-mantap-sehat-app/domain"

// AuthState is the aggregate the rest of the application reads: the
// current session, the identity derived from it, the resolved role and
// profile, and whether the initial bootstrap is still in flight.
//
// Invariant: when Session is nil, Role is RoleUnknown and Profile is nil.
// Invariant: Loading starts true and becomes false exactly once.
type AuthState struct {
	Session  *domain.Session
	Identity *domain.Identity
	Role     domain.Role
	Profile  *domain.Profile
	Loading  bool
}

// Authenticated reports whether a session is present.
func (s AuthState) Authenticated() bool { return s.Session != nil }

// NotifyKind classifies a user-facing notification
type NotifyKind int

const (
	NotifySuccess NotifyKind = iota
	NotifyError
)

// Notifier is the injected toast capability. The session layer reports
// outcomes through it but owns no rendering.
type Notifier interface {
	Notify(kind NotifyKind, title, detail string)
}

// NopNotifier discards all notifications
type NopNotifier struct{}

func (NopNotifier) Notify(NotifyKind, string, string) {}
