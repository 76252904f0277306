package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// CareServiceImpl implements domain.CareService
type CareServiceImpl struct {
	nursePatientRepo domain.NursePatientRepository
	prescriptionRepo domain.PrescriptionRepository
	logRepo          domain.MedicationLogRepository
	medicineRepo     domain.MedicineRepository
	roleRepo         domain.RoleRepository
}

// NewCareService creates a new care service
func NewCareService(
	nursePatientRepo domain.NursePatientRepository,
	prescriptionRepo domain.PrescriptionRepository,
	logRepo domain.MedicationLogRepository,
	medicineRepo domain.MedicineRepository,
	roleRepo domain.RoleRepository,
) domain.CareService {
	return &CareServiceImpl{
		nursePatientRepo: nursePatientRepo,
		prescriptionRepo: prescriptionRepo,
		logRepo:          logRepo,
		medicineRepo:     medicineRepo,
		roleRepo:         roleRepo,
	}
}

// Patients implements domain.CareService. Each assigned patient comes
// back with adherence counters for the care dashboard.
func (s *CareServiceImpl) Patients(ctx context.Context, nurseID string) ([]domain.PatientSummary, error) {
	profiles, err := s.nursePatientRepo.ListPatients(ctx, nurseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	summaries := make([]domain.PatientSummary, 0, len(profiles))
	for _, profile := range profiles {
		summary := domain.PatientSummary{Patient: profile}

		summary.ActivePrescriptions, err = s.prescriptionRepo.CountActiveByPatient(ctx, profile.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to count prescriptions for %s: %w", profile.UserID, err)
		}

		summary.LogsLastWeek, err = s.logRepo.CountByPatientSince(ctx, profile.UserID, 7)
		if err != nil {
			return nil, fmt.Errorf("failed to count logs for %s: %w", profile.UserID, err)
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// PatientPrescriptions implements domain.CareService. The patient must be
// on the nurse's care list.
func (s *CareServiceImpl) PatientPrescriptions(ctx context.Context, nurseID, patientID string) ([]domain.Prescription, error) {
	if err := s.requireAssignment(ctx, nurseID, patientID); err != nil {
		return nil, err
	}
	return s.prescriptionRepo.ListActiveByPatient(ctx, patientID)
}

// Prescribe implements domain.CareService
func (s *CareServiceImpl) Prescribe(ctx context.Context, nurseID string, prescription *domain.Prescription) error {
	if err := s.requireAssignment(ctx, nurseID, prescription.PatientID); err != nil {
		return err
	}

	if _, err := s.medicineRepo.FindByID(ctx, prescription.MedicineID); err != nil {
		return err
	}

	prescription.ID = uuid.NewString()
	prescription.NurseID = nurseID
	prescription.Active = true

	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}

	Audit(domain.NewAuditEvent(domain.PrescriptionCreatedEvent, nurseID).
		WithMetadata("prescription_id", prescription.ID).
		WithMetadata("patient_id", prescription.PatientID))
	return nil
}

// DeactivatePrescription implements domain.CareService
func (s *CareServiceImpl) DeactivatePrescription(ctx context.Context, nurseID, prescriptionID string) error {
	prescription, err := s.prescriptionRepo.FindByID(ctx, prescriptionID)
	if err != nil {
		return err
	}

	if err := s.requireAssignment(ctx, nurseID, prescription.PatientID); err != nil {
		return err
	}

	return s.prescriptionRepo.Deactivate(ctx, prescriptionID)
}

// AssignPatient implements domain.CareService. Both sides of the
// assignment must hold the expected role.
func (s *CareServiceImpl) AssignPatient(ctx context.Context, nurseID, patientID string) error {
	nurseRole, err := s.roleRepo.FindByUserID(ctx, nurseID)
	if err != nil || nurseRole != domain.RoleNurse {
		return domain.ErrInvalidRole
	}

	patientRole, err := s.roleRepo.FindByUserID(ctx, patientID)
	if err != nil || patientRole != domain.RolePatient {
		return domain.ErrInvalidRole
	}

	assigned, err := s.nursePatientRepo.IsAssigned(ctx, nurseID, patientID)
	if err != nil {
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if assigned {
		return nil
	}

	if err := s.nursePatientRepo.Assign(ctx, &domain.NursePatient{NurseID: nurseID, PatientID: patientID}); err != nil {
		return err
	}

	Audit(domain.NewAuditEvent(domain.PatientAssignedEvent, nurseID).WithMetadata("patient_id", patientID))
	return nil
}

func (s *CareServiceImpl) requireAssignment(ctx context.Context, nurseID, patientID string) error {
	assigned, err := s.nursePatientRepo.IsAssigned(ctx, nurseID, patientID)
	if err != nil {
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if !assigned {
		return domain.ErrPatientNotAssigned
	}
	return nil
}
