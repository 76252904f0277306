package mocks

import (
	"context"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockRoleRepository implements domain.RoleRepository interface for testing
type MockRoleRepository struct {
	AssignFunc       func(ctx context.Context, assignment *domain.RoleAssignment) error
	FindByUserIDFunc func(ctx context.Context, userID string) (domain.Role, error)
	CountByRoleFunc  func(ctx context.Context, role domain.Role) (int64, error)
}

// NewMockRoleRepository creates a new MockRoleRepository with default behaviors
func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{}
}

// Assign binds a user to a role
func (m *MockRoleRepository) Assign(ctx context.Context, assignment *domain.RoleAssignment) error {
	if m.AssignFunc != nil {
		return m.AssignFunc(ctx, assignment)
	}
	// Default behavior: success
	return nil
}

// FindByUserID finds a user's role assignment
func (m *MockRoleRepository) FindByUserID(ctx context.Context, userID string) (domain.Role, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	// Default behavior: not found
	return domain.RoleUnknown, domain.ErrRoleNotFound
}

// CountByRole counts users holding the role
func (m *MockRoleRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	// Default behavior: zero
	return 0, nil
}
