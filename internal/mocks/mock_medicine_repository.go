package mocks

import (
	"context"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockMedicineRepository implements domain.MedicineRepository interface for testing
type MockMedicineRepository struct {
	CreateFunc   func(ctx context.Context, medicine *domain.Medicine) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.Medicine, error)
	ListFunc     func(ctx context.Context) ([]domain.Medicine, error)
	DeleteFunc   func(ctx context.Context, id string) error
	CountFunc    func(ctx context.Context) (int64, error)
}

// NewMockMedicineRepository creates a new MockMedicineRepository with default behaviors
func NewMockMedicineRepository() *MockMedicineRepository {
	return &MockMedicineRepository{}
}

// Create adds a catalog entry
func (m *MockMedicineRepository) Create(ctx context.Context, medicine *domain.Medicine) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, medicine)
	}
	// Default behavior: success
	return nil
}

// FindByID finds a medicine by ID
func (m *MockMedicineRepository) FindByID(ctx context.Context, id string) (*domain.Medicine, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrMedicineNotFound
}

// List lists the catalog
func (m *MockMedicineRepository) List(ctx context.Context) ([]domain.Medicine, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	// Default behavior: empty
	return nil, nil
}

// Delete removes a catalog entry
func (m *MockMedicineRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// Count counts catalog entries
func (m *MockMedicineRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	// Default behavior: zero
	return 0, nil
}
