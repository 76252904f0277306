package mocks

import (
	"context"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MockNursePatientRepository implements domain.NursePatientRepository interface for testing
type MockNursePatientRepository struct {
	AssignFunc       func(ctx context.Context, assignment *domain.NursePatient) error
	UnassignFunc     func(ctx context.Context, nurseID, patientID string) error
	IsAssignedFunc   func(ctx context.Context, nurseID, patientID string) (bool, error)
	ListPatientsFunc func(ctx context.Context, nurseID string) ([]domain.Profile, error)
}

// NewMockNursePatientRepository creates a new MockNursePatientRepository with default behaviors
func NewMockNursePatientRepository() *MockNursePatientRepository {
	return &MockNursePatientRepository{}
}

// Assign puts a patient on a nurse's care list
func (m *MockNursePatientRepository) Assign(ctx context.Context, assignment *domain.NursePatient) error {
	if m.AssignFunc != nil {
		return m.AssignFunc(ctx, assignment)
	}
	// Default behavior: success
	return nil
}

// Unassign removes a patient from a nurse's care list
func (m *MockNursePatientRepository) Unassign(ctx context.Context, nurseID, patientID string) error {
	if m.UnassignFunc != nil {
		return m.UnassignFunc(ctx, nurseID, patientID)
	}
	// Default behavior: success
	return nil
}

// IsAssigned reports whether the patient is on the nurse's care list
func (m *MockNursePatientRepository) IsAssigned(ctx context.Context, nurseID, patientID string) (bool, error) {
	if m.IsAssignedFunc != nil {
		return m.IsAssignedFunc(ctx, nurseID, patientID)
	}
	// Default behavior: not assigned
	return false, nil
}

// ListPatients lists the nurse's assigned patients
func (m *MockNursePatientRepository) ListPatients(ctx context.Context, nurseID string) ([]domain.Profile, error) {
	if m.ListPatientsFunc != nil {
		return m.ListPatientsFunc(ctx, nurseID)
	}
	// Default behavior: empty
	return nil, nil
}
