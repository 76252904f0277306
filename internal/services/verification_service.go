package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// VerificationServiceImpl implements domain.VerificationService using
// Redis persistence. Tokens are opaque UUIDs delivered by email; the
// reverse index (token -> user) is what Verify consumes.
type VerificationServiceImpl struct {
	notificationSvc domain.NotificationService
	userRepo        domain.UserRepository
	redisClient     *redis.Client
	config          VerificationConfig
}

type VerificationConfig struct {
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewVerificationService creates a new Redis-based verification service
func NewVerificationService(notificationSvc domain.NotificationService, userRepo domain.UserRepository, redisClient *redis.Client, config VerificationConfig) domain.VerificationService {
	return &VerificationServiceImpl{
		notificationSvc: notificationSvc,
		userRepo:        userRepo,
		redisClient:     redisClient,
		config:          config,
	}
}

// Generate implements domain.VerificationService
func (s *VerificationServiceImpl) Generate(ctx context.Context, email, userID string) (*domain.VerificationRequest, error) {
	resendKey := fmt.Sprintf("verify:res:%s", email)

	if canResend, waitTime, _ := s.CanResend(ctx, email); !canResend {
		return nil, fmt.Errorf("please wait %d seconds before requesting a new verification email: %w",
			waitTime, domain.ErrVerificationResendLimit)
	}

	token := uuid.NewString()
	tokenKey := fmt.Sprintf("verify:tok:%s", token)

	if err := s.redisClient.Set(ctx, tokenKey, userID, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	req := &domain.VerificationRequest{
		Email:     email,
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}

	subject := "Verify your IMO MANTAP account"
	body := fmt.Sprintf("Your verification token is: %s. Valid for %d hours.", token, int(s.config.TTL.Hours()))
	if err := s.notificationSvc.SendEmail(email, subject, body); err != nil {
		// Clean up Redis entries if delivery fails
		s.redisClient.Del(ctx, tokenKey, resendKey)
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	Audit(domain.NewAuditEvent(domain.EmailVerifyRequestEvent, userID).WithEmail(email))

	return req, nil
}

// Verify implements domain.VerificationService. On success the user's
// email is marked verified and the user ID is returned. Verifying an
// already-consumed token reports not-found.
func (s *VerificationServiceImpl) Verify(ctx context.Context, token string) (string, error) {
	tokenKey := fmt.Sprintf("verify:tok:%s", token)

	userID, err := s.redisClient.Get(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		Audit(domain.NewAuditEvent(domain.EmailVerifyFailureEvent, "").WithError(domain.ErrVerificationNotFound))
		return "", domain.ErrVerificationNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get verification token: %w", err)
	}

	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return "", fmt.Errorf("failed to mark email verified: %w", err)
	}

	s.redisClient.Del(ctx, tokenKey)

	Audit(domain.NewAuditEvent(domain.EmailVerifiedEvent, userID))

	return userID, nil
}

// CanResend implements domain.VerificationService with Redis-based throttling
func (s *VerificationServiceImpl) CanResend(ctx context.Context, email string) (bool, int64, error) {
	resendKey := fmt.Sprintf("verify:res:%s", email)

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// If TTL <= 0, key doesn't exist or has expired - can resend
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}
