package mocks

import (
	"context"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockMedicationLogRepository implements domain.MedicationLogRepository interface for testing
type MockMedicationLogRepository struct {
	CreateFunc              func(ctx context.Context, log *domain.MedicationLog) error
	ListRecentByPatientFunc func(ctx context.Context, patientID string, limit int) ([]domain.MedicationLog, error)
	CountByPatientSinceFunc func(ctx context.Context, patientID string, days int) (int64, error)
}

// NewMockMedicationLogRepository creates a new MockMedicationLogRepository with default behaviors
func NewMockMedicationLogRepository() *MockMedicationLogRepository {
	return &MockMedicationLogRepository{}
}

// Create stores an intake log entry
func (m *MockMedicationLogRepository) Create(ctx context.Context, log *domain.MedicationLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	// Default behavior: success
	return nil
}

// ListRecentByPatient lists the patient's recent logs, newest first
func (m *MockMedicationLogRepository) ListRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.MedicationLog, error) {
	if m.ListRecentByPatientFunc != nil {
		return m.ListRecentByPatientFunc(ctx, patientID, limit)
	}
	// Default behavior: empty
	return nil, nil
}

// CountByPatientSince counts the patient's logs within the window
func (m *MockMedicationLogRepository) CountByPatientSince(ctx context.Context, patientID string, days int) (int64, error) {
	if m.CountByPatientSinceFunc != nil {
		return m.CountByPatientSinceFunc(ctx, patientID, days)
	}
	// Default behavior: zero
	return 0, nil
}
