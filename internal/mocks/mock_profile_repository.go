package mocks

import (
	"context"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockProfileRepository implements domain.ProfileRepository interface for testing
type MockProfileRepository struct {
	CreateFunc        func(ctx context.Context, profile *domain.Profile) error
	FindByUserIDFunc  func(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateFunc        func(ctx context.Context, profile *domain.Profile) error
	ListWithRolesFunc func(ctx context.Context) ([]domain.UserAccount, error)
}

// NewMockProfileRepository creates a new MockProfileRepository with default behaviors
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

// Create creates a new profile
func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	// Default behavior: success
	return nil
}

// FindByUserID finds a profile by user ID
func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrProfileNotFound
}

// Update updates an existing profile
func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	// Default behavior: success
	return nil
}

// ListWithRoles lists all accounts with profile and role
func (m *MockProfileRepository) ListWithRoles(ctx context.Context) ([]domain.UserAccount, error) {
	if m.ListWithRolesFunc != nil {
		return m.ListWithRolesFunc(ctx)
	}
	// Default behavior: empty list
	return nil, nil
}
