package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	profileRepo     domain.ProfileRepository
	roleRepo        domain.RoleRepository
	sessionRepo     domain.SessionRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	verificationSvc domain.VerificationService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	roleRepo domain.RoleRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	verificationSvc domain.VerificationService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		roleRepo:        roleRepo,
		sessionRepo:     sessionRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		verificationSvc: verificationSvc,
	}
}

// Register implements domain.AuthService. The postcondition is "account
// request submitted": the user still has to verify their email before the
// first login, so no session is established here.
func (s *AuthServiceImpl) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if err := validateRegistration(reg); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, reg.Email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:            uuid.NewString(),
		Email:         reg.Email,
		PasswordHash:  hashedPassword,
		IsActive:      true,
		EmailVerified: false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &domain.Profile{
		UserID:    user.ID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Phone:     reg.Phone,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	assignment := &domain.RoleAssignment{UserID: user.ID, Role: reg.Role}
	if err := s.roleRepo.Assign(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	if _, err := s.verificationSvc.Generate(ctx, user.Email, user.ID); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	Audit(domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithEmail(user.Email).
		WithMetadata("role", string(reg.Role)))
	return user, nil
}

func validateRegistration(reg domain.Registration) error {
	// Phone is the only optional field.
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

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		Audit(domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(email).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	role, err := s.roleRepo.FindByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}

	session := &domain.Session{
		ID:        "sess_" + uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	Audit(domain.NewAuditEvent(domain.UserLoginEvent, user.ID).
		WithEmail(email).
		WithSession(session.ID))

	return &domain.AuthResult{
		User:         user,
		Role:         role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    15 * 60, // 15 minutes in seconds
	}, nil
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, claims.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		Role:         claims.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken, // Keep same refresh token
		SessionID:    session.ID,
		ExpiresIn:    15 * 60,
	}, nil
}

// Logout implements domain.AuthService. Deleting an absent session is a
// no-op at the repository, so logout is idempotent.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	Audit(domain.NewAuditEvent(domain.UserLogoutEvent, "").WithSession(sessionID))
	return nil
}

// GetAccount implements domain.AuthService. A missing role or profile is
// reported as unknown/empty rather than an error so callers can render a
// partial account.
func (s *AuthServiceImpl) GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	account := &domain.UserAccount{User: *user, Role: domain.RoleUnknown}

	if role, err := s.roleRepo.FindByUserID(ctx, userID); err == nil {
		account.Role = role
	}
	if profile, err := s.profileRepo.FindByUserID(ctx, userID); err == nil {
		account.Profile = *profile
	}

	return account, nil
}
