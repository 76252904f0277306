package mocks

import (
	"context"
	"time"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockVerificationService implements domain.VerificationService interface for testing
type MockVerificationService struct {
	GenerateFunc  func(ctx context.Context, email, userID string) (*domain.VerificationRequest, error)
	VerifyFunc    func(ctx context.Context, token string) (string, error)
	CanResendFunc func(ctx context.Context, email string) (bool, int64, error)
}

// NewMockVerificationService creates a new MockVerificationService with default behaviors
func NewMockVerificationService() *MockVerificationService {
	return &MockVerificationService{}
}

// Generate issues a verification token
func (m *MockVerificationService) Generate(ctx context.Context, email, userID string) (*domain.VerificationRequest, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, email, userID)
	}
	// Default behavior: fixed token
	return &domain.VerificationRequest{
		Email:     email,
		Token:     "verify_token_" + userID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

// Verify consumes a verification token
func (m *MockVerificationService) Verify(ctx context.Context, token string) (string, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	// Default behavior: unknown token
	return "", domain.ErrVerificationNotFound
}

// CanResend reports whether the throttle window has passed
func (m *MockVerificationService) CanResend(ctx context.Context, email string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, email)
	}
	// Default behavior: allowed
	return true, 0, nil
}
