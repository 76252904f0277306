package mocks

import (
	"context"
	"time"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc     func(ctx context.Context, reg domain.Registration) (*domain.User, error)
	LoginFunc        func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc       func(ctx context.Context, sessionID string) error
	GetAccountFunc   func(ctx context.Context, userID string) (*domain.UserAccount, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new account
func (m *MockAuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	// Default behavior: return a mock user awaiting verification
	return &domain.User{
		ID:            "user-1",
		Email:         reg.Email,
		PasswordHash:  "hashed_" + reg.Password,
		IsActive:      true,
		EmailVerified: false,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: successful patient login
	return &domain.AuthResult{
		User: &domain.User{
			ID:            "user-1",
			Email:         email,
			IsActive:      true,
			EmailVerified: true,
		},
		Role:         domain.RolePatient,
		AccessToken:  "access_token_user-1",
		RefreshToken: "refresh_token_user-1",
		SessionID:    "sess_1",
		ExpiresIn:    900,
	}, nil
}

// RefreshToken exchanges a refresh token for a new access token
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	// Default behavior: invalid token
	return nil, domain.ErrTokenInvalid
}

// Logout ends a session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

// GetAccount returns the account joined with profile and role
func (m *MockAuthService) GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, userID)
	}
	// Default behavior: a verified patient account
	return &domain.UserAccount{
		User: domain.User{
			ID:            userID,
			Email:         "user@example.com",
			IsActive:      true,
			EmailVerified: true,
		},
		Profile: domain.Profile{UserID: userID, FirstName: "Test", LastName: "User"},
		Role:    domain.RolePatient,
	}, nil
}
