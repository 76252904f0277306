package mocks

import (
	"context"
	"time"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockMedicationService implements domain.MedicationService interface for testing
type MockMedicationService struct {
	ActivePrescriptionsFunc func(ctx context.Context, patientID string) ([]domain.Prescription, error)
	RecentLogsFunc          func(ctx context.Context, patientID string, limit int) ([]domain.MedicationLog, error)
	LogIntakeFunc           func(ctx context.Context, patientID, prescriptionID string, status domain.IntakeStatus) (*domain.MedicationLog, error)
}

// NewMockMedicationService creates a new MockMedicationService with default behaviors
func NewMockMedicationService() *MockMedicationService {
	return &MockMedicationService{}
}

// ActivePrescriptions lists active prescriptions for a patient
func (m *MockMedicationService) ActivePrescriptions(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	if m.ActivePrescriptionsFunc != nil {
		return m.ActivePrescriptionsFunc(ctx, patientID)
	}
	// Default behavior: no prescriptions
	return []domain.Prescription{}, nil
}

// RecentLogs lists recent medication logs for a patient
func (m *MockMedicationService) RecentLogs(ctx context.Context, patientID string, limit int) ([]domain.MedicationLog, error) {
	if m.RecentLogsFunc != nil {
		return m.RecentLogsFunc(ctx, patientID, limit)
	}
	// Default behavior: no logs
	return []domain.MedicationLog{}, nil
}

// LogIntake records an intake event
func (m *MockMedicationService) LogIntake(ctx context.Context, patientID, prescriptionID string, status domain.IntakeStatus) (*domain.MedicationLog, error) {
	if m.LogIntakeFunc != nil {
		return m.LogIntakeFunc(ctx, patientID, prescriptionID, status)
	}
	// Default behavior: echo the request back as a stored log
	return &domain.MedicationLog{
		ID:             "log_1",
		PrescriptionID: prescriptionID,
		PatientID:      patientID,
		Status:         status,
		TakenAt:        time.Now(),
	}, nil
}
