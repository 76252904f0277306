package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/mocks"
)

type authServiceDeps struct {
	userRepo        *mocks.MockUserRepository
	profileRepo     *mocks.MockProfileRepository
	roleRepo        *mocks.MockRoleRepository
	sessionRepo     *mocks.MockSessionRepository
	passwordSvc     *mocks.MockPasswordService
	tokenSvc        *mocks.MockTokenService
	verificationSvc *mocks.MockVerificationService
}

func newAuthServiceDeps() *authServiceDeps {
	return &authServiceDeps{
		userRepo:        mocks.NewMockUserRepository(),
		profileRepo:     mocks.NewMockProfileRepository(),
		roleRepo:        mocks.NewMockRoleRepository(),
		sessionRepo:     mocks.NewMockSessionRepository(),
		passwordSvc:     mocks.NewMockPasswordService(),
		tokenSvc:        mocks.NewMockTokenService(),
		verificationSvc: mocks.NewMockVerificationService(),
	}
}

func (d *authServiceDeps) build() domain.AuthService {
	return NewAuthService(d.userRepo, d.profileRepo, d.roleRepo, d.sessionRepo, d.passwordSvc, d.tokenSvc, d.verificationSvc)
}

func verifiedUser(email string) *domain.User {
	return &domain.User{
		ID:            "user-1",
		Email:         email,
		PasswordHash:  "hashed_correct",
		IsActive:      true,
		EmailVerified: true,
	}
}

func validReg() domain.Registration {
	return domain.Registration{
		Email:     "ani@example.com",
		Password:  "s3cret!",
		FirstName: "Ani",
		LastName:  "Wijaya",
		Role:      domain.RolePatient,
	}
}

func TestRegisterSuccess(t *testing.T) {
	deps := newAuthServiceDeps()

	var createdProfile *domain.Profile
	deps.profileRepo.CreateFunc = func(_ context.Context, p *domain.Profile) error {
		createdProfile = p
		return nil
	}
	var assignedRole domain.Role
	deps.roleRepo.AssignFunc = func(_ context.Context, a *domain.RoleAssignment) error {
		assignedRole = a.Role
		return nil
	}
	verificationSent := false
	deps.verificationSvc.GenerateFunc = func(_ context.Context, email, userID string) (*domain.VerificationRequest, error) {
		verificationSent = true
		return &domain.VerificationRequest{Email: email, UserID: userID, Token: "tok"}, nil
	}

	user, err := deps.build().Register(context.Background(), validReg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated user ID")
	}
	if user.EmailVerified {
		t.Error("a new account must start unverified")
	}
	if !user.IsActive {
		t.Error("a new account must start active")
	}
	if createdProfile == nil || createdProfile.FirstName != "Ani" || createdProfile.UserID != user.ID {
		t.Errorf("profile not created correctly: %+v", createdProfile)
	}
	if assignedRole != domain.RolePatient {
		t.Errorf("role = %s, want patient", assignedRole)
	}
	if !verificationSent {
		t.Error("expected a verification email to be issued")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Registration)
		wantErr error
	}{
		{"missing email", func(r *domain.Registration) { r.Email = "" }, domain.ErrMissingField},
		{"blank password", func(r *domain.Registration) { r.Password = "   " }, domain.ErrMissingField},
		{"missing first name", func(r *domain.Registration) { r.FirstName = "" }, domain.ErrMissingField},
		{"missing last name", func(r *domain.Registration) { r.LastName = "" }, domain.ErrMissingField},
		{"unknown role", func(r *domain.Registration) { r.Role = domain.RoleUnknown }, domain.ErrInvalidRole},
		{"made-up role", func(r *domain.Registration) { r.Role = domain.Role("root") }, domain.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newAuthServiceDeps()
			reg := validReg()
			tt.mutate(&reg)

			_, err := deps.build().Register(context.Background(), reg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	deps := newAuthServiceDeps()
	deps.userRepo.FindByEmailFunc = func(_ context.Context, email string) (*domain.User, error) {
		return verifiedUser(email), nil
	}

	_, err := deps.build().Register(context.Background(), validReg())
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	deps := newAuthServiceDeps()
	deps.userRepo.FindByEmailFunc = func(_ context.Context, email string) (*domain.User, error) {
		return verifiedUser(email), nil
	}
	deps.passwordSvc.VerifyFunc = func(hash, password string) bool {
		return hash == "hashed_correct" && password == "correct"
	}
	deps.roleRepo.FindByUserIDFunc = func(_ context.Context, _ string) (domain.Role, error) {
		return domain.RoleNurse, nil
	}
	var createdSession *domain.Session
	deps.sessionRepo.CreateFunc = func(_ context.Context, s *domain.Session) error {
		createdSession = s
		return nil
	}

	result, err := deps.build().Login(context.Background(), "sari@example.com", "correct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != domain.RoleNurse {
		t.Errorf("role = %s, want nurse", result.Role)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected both tokens")
	}
	if result.ExpiresIn != 15*60 {
		t.Errorf("expires_in = %d, want 900", result.ExpiresIn)
	}
	if createdSession == nil {
		t.Fatal("expected a session to be created")
	}
	if createdSession.ID != result.SessionID {
		t.Error("result must carry the created session's ID")
	}
	if createdSession.UserID != "user-1" || createdSession.Email != "sari@example.com" {
		t.Errorf("session identity wrong: %+v", createdSession)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		user    func() *domain.User
		findErr error
		wantErr error
	}{
		{
			name:    "unknown email",
			findErr: domain.ErrUserNotFound,
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "inactive account",
			user: func() *domain.User {
				u := verifiedUser("a@example.com")
				u.IsActive = false
				return u
			},
			wantErr: domain.ErrUserInactive,
		},
		{
			name: "unverified email",
			user: func() *domain.User {
				u := verifiedUser("a@example.com")
				u.EmailVerified = false
				return u
			},
			wantErr: domain.ErrEmailNotVerified,
		},
		{
			name:    "wrong password",
			user:    func() *domain.User { return verifiedUser("a@example.com") },
			wantErr: domain.ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newAuthServiceDeps()
			deps.userRepo.FindByEmailFunc = func(context.Context, string) (*domain.User, error) {
				if tt.findErr != nil {
					return nil, tt.findErr
				}
				return tt.user(), nil
			}
			deps.passwordSvc.VerifyFunc = func(string, string) bool { return false }

			_, err := deps.build().Login(context.Background(), "a@example.com", "wrong")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoginWithoutRoleStillSucceeds(t *testing.T) {
	deps := newAuthServiceDeps()
	deps.userRepo.FindByEmailFunc = func(_ context.Context, email string) (*domain.User, error) {
		return verifiedUser(email), nil
	}
	deps.passwordSvc.VerifyFunc = func(string, string) bool { return true }
	// Default role repo behavior: ErrRoleNotFound.

	result, err := deps.build().Login(context.Background(), "a@example.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != domain.RoleUnknown {
		t.Errorf("role = %s, want unknown when no assignment exists", result.Role)
	}
}

func TestRefreshToken(t *testing.T) {
	deps := newAuthServiceDeps()
	deps.tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		if token != "good_refresh" {
			return nil, domain.ErrTokenInvalid
		}
		return &domain.TokenClaims{UserID: "user-1", Role: domain.RolePatient, SessionID: "sess_1"}, nil
	}
	deps.sessionRepo.FindByIDFunc = func(_ context.Context, id string) (*domain.Session, error) {
		return &domain.Session{ID: id, UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	deps.userRepo.FindByIDFunc = func(_ context.Context, id string) (*domain.User, error) {
		return verifiedUser("a@example.com"), nil
	}

	result, err := deps.build().RefreshToken(context.Background(), "good_refresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RefreshToken != "good_refresh" {
		t.Error("refresh must keep the same refresh token")
	}
	if result.AccessToken == "" {
		t.Error("expected a new access token")
	}

	if _, err := deps.build().RefreshToken(context.Background(), "bad"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestRefreshTokenSessionGone(t *testing.T) {
	deps := newAuthServiceDeps()
	deps.tokenSvc.ValidateRefreshTokenFunc = func(string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: "user-1", SessionID: "sess_1"}, nil
	}
	// Default session repo behavior: ErrSessionNotFound.

	_, err := deps.build().RefreshToken(context.Background(), "tok")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	deps := newAuthServiceDeps()
	deleted := 0
	deps.sessionRepo.DeleteFunc = func(_ context.Context, sessionID string) error {
		deleted++
		return nil
	}

	svc := deps.build()
	if err := svc.Logout(context.Background(), "sess_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Logging out the same session again still succeeds.
	if err := svc.Logout(context.Background(), "sess_1"); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 delete calls, got %d", deleted)
	}
}

func TestGetAccount(t *testing.T) {
	deps := newAuthServiceDeps()
	deps.userRepo.FindByIDFunc = func(_ context.Context, id string) (*domain.User, error) {
		return verifiedUser("a@example.com"), nil
	}
	deps.roleRepo.FindByUserIDFunc = func(context.Context, string) (domain.Role, error) {
		return domain.RoleAdmin, nil
	}
	deps.profileRepo.FindByUserIDFunc = func(_ context.Context, id string) (*domain.Profile, error) {
		return &domain.Profile{UserID: id, FirstName: "Budi"}, nil
	}

	account, err := deps.build().GetAccount(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Role != domain.RoleAdmin || account.Profile.FirstName != "Budi" {
		t.Errorf("unexpected account: %+v", account)
	}
}

func TestGetAccountPartial(t *testing.T) {
	deps := newAuthServiceDeps()
	deps.userRepo.FindByIDFunc = func(_ context.Context, id string) (*domain.User, error) {
		return verifiedUser("a@example.com"), nil
	}
	// Default role and profile repos report not-found.

	account, err := deps.build().GetAccount(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("a missing role or profile must not fail the lookup: %v", err)
	}
	if account.Role != domain.RoleUnknown {
		t.Errorf("role = %s, want unknown", account.Role)
	}
	if account.Profile.FirstName != "" {
		t.Errorf("expected empty profile, got %+v", account.Profile)
	}
}
