package mocks

import (
	"context"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockPrescriptionRepository implements domain.PrescriptionRepository interface for testing
type MockPrescriptionRepository struct {
	CreateFunc              func(ctx context.Context, prescription *domain.Prescription) error
	FindByIDFunc            func(ctx context.Context, id string) (*domain.Prescription, error)
	ListActiveByPatientFunc func(ctx context.Context, patientID string) ([]domain.Prescription, error)
	CountActiveByPatientFunc func(ctx context.Context, patientID string) (int64, error)
	DeactivateFunc          func(ctx context.Context, id string) error
	CountFunc               func(ctx context.Context) (int64, error)
}

// NewMockPrescriptionRepository creates a new MockPrescriptionRepository with default behaviors
func NewMockPrescriptionRepository() *MockPrescriptionRepository {
	return &MockPrescriptionRepository{}
}

// Create stores a prescription
func (m *MockPrescriptionRepository) Create(ctx context.Context, prescription *domain.Prescription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, prescription)
	}
	// Default behavior: success
	return nil
}

// FindByID finds a prescription by ID
func (m *MockPrescriptionRepository) FindByID(ctx context.Context, id string) (*domain.Prescription, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrPrescriptionNotFound
}

// ListActiveByPatient lists the patient's active prescriptions
func (m *MockPrescriptionRepository) ListActiveByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	if m.ListActiveByPatientFunc != nil {
		return m.ListActiveByPatientFunc(ctx, patientID)
	}
	// Default behavior: empty
	return nil, nil
}

// CountActiveByPatient counts the patient's active prescriptions
func (m *MockPrescriptionRepository) CountActiveByPatient(ctx context.Context, patientID string) (int64, error) {
	if m.CountActiveByPatientFunc != nil {
		return m.CountActiveByPatientFunc(ctx, patientID)
	}
	// Default behavior: zero
	return 0, nil
}

// Deactivate marks a prescription inactive
func (m *MockPrescriptionRepository) Deactivate(ctx context.Context, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// Count counts all prescriptions
func (m *MockPrescriptionRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	// Default behavior: zero
	return 0, nil
}
