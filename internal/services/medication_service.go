package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MedicationServiceImpl implements domain.MedicationService
type MedicationServiceImpl struct {
	prescriptionRepo domain.PrescriptionRepository
	logRepo          domain.MedicationLogRepository
}

// NewMedicationService creates a new medication service
func NewMedicationService(prescriptionRepo domain.PrescriptionRepository, logRepo domain.MedicationLogRepository) domain.MedicationService {
	return &MedicationServiceImpl{
		prescriptionRepo: prescriptionRepo,
		logRepo:          logRepo,
	}
}

// ActivePrescriptions implements domain.MedicationService
func (s *MedicationServiceImpl) ActivePrescriptions(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	return s.prescriptionRepo.ListActiveByPatient(ctx, patientID)
}

// RecentLogs implements domain.MedicationService
func (s *MedicationServiceImpl) RecentLogs(ctx context.Context, patientID string, limit int) ([]domain.MedicationLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.logRepo.ListRecentByPatient(ctx, patientID, limit)
}

// LogIntake implements domain.MedicationService. The prescription must
// belong to the calling patient and still be active; patients can only
// record taken or skipped (missed is derived, never self-reported).
func (s *MedicationServiceImpl) LogIntake(ctx context.Context, patientID, prescriptionID string, status domain.IntakeStatus) (*domain.MedicationLog, error) {
	if status != domain.IntakeTaken && status != domain.IntakeSkipped {
		return nil, domain.ErrInvalidIntakeStatus
	}

	prescription, err := s.prescriptionRepo.FindByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription.PatientID != patientID {
		return nil, domain.ErrNotPrescribedToUser
	}
	if !prescription.Active {
		return nil, domain.ErrPrescriptionInactive
	}

	log := &domain.MedicationLog{
		ID:             uuid.NewString(),
		PrescriptionID: prescriptionID,
		PatientID:      patientID,
		Status:         status,
		TakenAt:        time.Now(),
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create medication log: %w", err)
	}

	Audit(domain.NewAuditEvent(domain.MedicationLoggedEvent, patientID).
		WithMetadata("prescription_id", prescriptionID).
		WithMetadata("status", string(status)))

	log.Prescription = prescription
	return log, nil
}
