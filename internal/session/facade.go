package session

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// Facade exposes the three credential operations to UI consumers. Every
// path surfaces a notification; none of them navigate or mutate the
// store directly. The store picks up the resulting state through the
// backend's session-change events, and the login-redirect hook handles
// navigation, so a successful sign-in never races two navigations.
type Facade struct {
	backend  Backend
	notifier Notifier
	logger   *log.Logger
}

// NewFacade creates the auth façade.
func NewFacade(backend Backend, notifier Notifier, logger *log.Logger) *Facade {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Facade{backend: backend, notifier: notifier, logger: logger}
}

// SignIn authenticates with email and password. Credential rejections are
// reported as such; any other backend failure is reported generically so
// internal error detail never reaches the user.
func (f *Facade) SignIn(ctx context.Context, email, password string) error {
	_, err := f.backend.SignIn(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			f.notifier.Notify(NotifyError, "Login failed", "Invalid email or password")
			return domain.ErrInvalidCredentials
		case errors.Is(err, domain.ErrEmailNotVerified):
			f.notifier.Notify(NotifyError, "Login failed", "Please verify your email address first")
			return domain.ErrEmailNotVerified
		case errors.Is(err, domain.ErrUserInactive):
			f.notifier.Notify(NotifyError, "Login failed", "This account has been deactivated")
			return domain.ErrUserInactive
		default:
			f.logger.Printf("session: sign-in failed: %v", err)
			f.notifier.Notify(NotifyError, "Login failed", "Something went wrong during login")
			return domain.ErrUnauthorized
		}
	}

	f.notifier.Notify(NotifySuccess, "Login successful", "Welcome back to IMO MANTAP")
	return nil
}

// SignUp submits a registration request. All fields except phone must be
// non-empty before the backend is called. On success the account still
// needs email verification, so no session is established.
func (f *Facade) SignUp(ctx context.Context, reg domain.Registration) error {
	if err := validateSignUp(reg); err != nil {
		f.notifier.Notify(NotifyError, "Registration failed", "Please fill in all required fields")
		return err
	}

	if err := f.backend.SignUp(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			f.notifier.Notify(NotifyError, "Registration failed", "An account with this email already exists")
			return domain.ErrUserAlreadyExists
		}
		f.logger.Printf("session: sign-up failed: %v", err)
		f.notifier.Notify(NotifyError, "Registration failed", "Something went wrong during registration")
		return err
	}

	f.notifier.Notify(NotifySuccess, "Registration successful", "Check your email to verify your account")
	return nil
}

func validateSignUp(reg domain.Registration) error {
	for _, field := range []string{reg.Email, reg.Password, reg.FirstName, reg.LastName} {
		if strings.TrimSpace(field) == "" {
			return domain.ErrMissingField
		}
	}
	if !reg.Role.Known() {
		return domain.ErrInvalidRole
	}
	return nil
}

// SignOut ends the current session. It is idempotent: signing out with no
// active session succeeds and local state is still cleared through the
// resulting SignedOut event.
func (f *Facade) SignOut(ctx context.Context) error {
	if err := f.backend.SignOut(ctx); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		f.logger.Printf("session: sign-out failed: %v", err)
		f.notifier.Notify(NotifyError, "Logout failed", "Something went wrong during logout")
		return err
	}

	f.notifier.Notify(NotifySuccess, "Logout successful", "You have been signed out")
	return nil
}
