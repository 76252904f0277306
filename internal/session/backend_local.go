package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// LocalBackend implements Backend in-process over the auth service and
// the session repository. It tracks the current session the way a
// browser-side backend client would and fans session events out to
// subscribers in registration order.
type LocalBackend struct {
	auth     domain.AuthService
	sessions domain.SessionRepository

	mu           sync.Mutex
	current      *domain.Session
	refreshToken string
	subs         map[int]func(domain.SessionEvent)
	nextSub      int
}

// NewLocalBackend creates an in-process backend.
func NewLocalBackend(auth domain.AuthService, sessions domain.SessionRepository) *LocalBackend {
	return &LocalBackend{
		auth:     auth,
		sessions: sessions,
		subs:     make(map[int]func(domain.SessionEvent)),
	}
}

// CurrentSession implements Backend. A remembered session that the server
// no longer recognizes (expired, revoked) reads as signed out.
func (b *LocalBackend) CurrentSession(ctx context.Context) (*domain.Session, error) {
	b.mu.Lock()
	current := b.current
	b.mu.Unlock()

	if current == nil {
		return nil, nil
	}

	sess, err := b.sessions.FindByID(ctx, current.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired) {
			b.mu.Lock()
			b.current = nil
			b.mu.Unlock()
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

// SignIn implements Backend.
func (b *LocalBackend) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	result, err := b.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess, err := b.sessions.FindByID(ctx, result.SessionID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.current = sess
	b.refreshToken = result.RefreshToken
	b.mu.Unlock()

	b.emit(domain.SessionEvent{Kind: domain.SessionSignedIn, Session: sess})
	return sess, nil
}

// Refresh renews the access token for the current session and emits
// TokenRefreshed, the way a hosted client renews in the background.
// Identity is unchanged, so subscribers keep their resolved role.
func (b *LocalBackend) Refresh(ctx context.Context) error {
	b.mu.Lock()
	current := b.current
	token := b.refreshToken
	b.mu.Unlock()

	if current == nil {
		return domain.ErrSessionNotFound
	}

	if _, err := b.auth.RefreshToken(ctx, token); err != nil {
		return err
	}

	sess, err := b.sessions.FindByID(ctx, current.ID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.current = sess
	b.mu.Unlock()

	b.emit(domain.SessionEvent{Kind: domain.SessionTokenRefreshed, Session: sess})
	return nil
}

// SignUp implements Backend. No session event follows: the account needs
// email verification before its first sign-in.
func (b *LocalBackend) SignUp(ctx context.Context, reg domain.Registration) error {
	_, err := b.auth.Register(ctx, reg)
	return err
}

// SignOut implements Backend. With no active session it still succeeds
// and still emits SignedOut so local state is cleared.
func (b *LocalBackend) SignOut(ctx context.Context) error {
	b.mu.Lock()
	current := b.current
	b.current = nil
	b.refreshToken = ""
	b.mu.Unlock()

	var err error
	if current != nil {
		err = b.auth.Logout(ctx, current.ID)
	}

	b.emit(domain.SessionEvent{Kind: domain.SessionSignedOut})
	return err
}

// Subscribe implements Backend.
func (b *LocalBackend) Subscribe(fn func(domain.SessionEvent)) func() {
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *LocalBackend) emit(ev domain.SessionEvent) {
	b.mu.Lock()
	listeners := make([]func(domain.SessionEvent), 0, len(b.subs))
	for i := 0; i < b.nextSub; i++ {
		if fn, ok := b.subs[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
