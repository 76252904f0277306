package session

import (
	"context"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// Backend is the surface the hosted auth backend exposes to the client
// layer: a one-shot session probe, the three credential operations, and a
// session-change subscription. All methods may touch the network; the
// store and façade treat every call as fallible.
type Backend interface {
	// CurrentSession probes for an existing session. A nil session with a
	// nil error means "not signed in".
	CurrentSession(ctx context.Context) (*domain.Session, error)

	// SignIn exchanges credentials for a session and emits a SignedIn
	// event to subscribers on success.
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)

	// SignUp submits an account request. It does not authenticate the
	// caller; verification happens out of band.
	SignUp(ctx context.Context, reg domain.Registration) error

	// SignOut clears the current session and emits a SignedOut event.
	// Signing out with no active session still succeeds.
	SignOut(ctx context.Context) error

	// Subscribe registers a session-change listener and returns the
	// function that removes it. Callers must unsubscribe on teardown.
	Subscribe(fn func(domain.SessionEvent)) (unsubscribe func())
}
