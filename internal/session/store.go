package session

import (
	"context"
	"log"
	"sync"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// Store holds the process-wide AuthState. It is the only writer: the
// backend pushes session-change events into it, and it schedules
// role/profile resolution off the notification turn. Consumers read
// snapshots.
//
// Every applied session event bumps an epoch, and each resolution carries
// the epoch it was issued under. A resolution that settles after a newer
// event has been applied is discarded, so role/profile data is never
// attributed to an identity that no longer owns the session.
type Store struct {
	backend  Backend
	resolver *Resolver
	logger   *log.Logger
	schedule func(func())

	mu           sync.Mutex
	state        AuthState
	epoch        uint64
	bootstrapped bool
	loadingDone  bool
	liveEvent    bool
	unsubscribe  func()
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithScheduler replaces the default goroutine scheduler used to run
// role/profile resolution after the notification callback returns.
// Tests use this to make resolution timing deterministic.
func WithScheduler(schedule func(func())) StoreOption {
	return func(s *Store) { s.schedule = schedule }
}

// WithLogger replaces the default logger.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store. The state starts empty with Loading true;
// call Bootstrap once to probe for an existing session and attach the
// live listener.
func NewStore(backend Backend, resolver *Resolver, opts ...StoreOption) *Store {
	s := &Store{
		backend:  backend,
		resolver: resolver,
		logger:   log.Default(),
		schedule: func(fn func()) { go fn() },
		state:    AuthState{Role: domain.RoleUnknown, Loading: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap attaches the session-change listener and performs the one
// initial probe for an existing session. Loading becomes false when it
// completes, whether or not a session was found; a probe failure is
// treated as "no session", not as an error state. Calling Bootstrap more
// than once is a no-op.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return
	}
	s.bootstrapped = true
	s.mu.Unlock()

	s.unsubscribe = s.backend.Subscribe(s.HandleSessionChange)

	sess, err := s.backend.CurrentSession(ctx)
	if err != nil {
		s.logger.Printf("session: initial probe failed, treating as signed out: %v", err)
		sess = nil
	}

	s.mu.Lock()
	// A live event that arrived while the probe was in flight is newer
	// than the probe result; the probe must not clobber it.
	if !s.liveEvent {
		s.applyLocked(domain.SessionEvent{Kind: domain.SessionInitial, Session: sess})
	}
	s.finishLoadingLocked()
	s.mu.Unlock()
}

// HandleSessionChange is the listener the backend invokes on every
// session transition. Session and identity are updated synchronously;
// on sign-out, role and profile are cleared in the same step so no stale
// role is ever readable after logout. Resolution of the new identity's
// role and profile is scheduled to run after this callback returns.
func (s *Store) HandleSessionChange(ev domain.SessionEvent) {
	s.mu.Lock()
	s.liveEvent = true
	s.applyLocked(ev)
	s.mu.Unlock()
}

// applyLocked installs the session carried by the event and schedules
// resolution when an identity is present. Callers hold s.mu.
func (s *Store) applyLocked(ev domain.SessionEvent) {
	s.epoch++
	epoch := s.epoch

	if ev.Session == nil {
		s.state.Session = nil
		s.state.Identity = nil
		s.state.Role = domain.RoleUnknown
		s.state.Profile = nil
		return
	}

	sess := *ev.Session
	identity := sess.Identity()
	s.state.Session = &sess
	s.state.Identity = &identity
	// Role and profile are re-resolved for every authenticated
	// transition; values from a previous identity are dropped now rather
	// than shown while the fetch is outstanding.
	s.state.Role = domain.RoleUnknown
	s.state.Profile = nil

	userID := sess.UserID
	s.schedule(func() { s.resolve(epoch, userID) })
}

// resolve fetches role and profile for the identity that owned the given
// epoch and applies them only if no newer session event has superseded it.
func (s *Store) resolve(epoch uint64, userID string) {
	role, profile := s.resolver.Resolve(context.Background(), userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.logger.Printf("session: discarding stale role/profile resolution for %s", userID)
		return
	}
	s.state.Role = role
	s.state.Profile = profile
}

// finishLoadingLocked latches Loading to false. It only ever fires once.
func (s *Store) finishLoadingLocked() {
	if s.loadingDone {
		return
	}
	s.loadingDone = true
	s.state.Loading = false
}

// Snapshot returns a copy of the current AuthState.
func (s *Store) Snapshot() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close detaches the session-change listener.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
