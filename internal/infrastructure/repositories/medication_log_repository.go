package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MedicationLogRepositoryImpl implements domain.MedicationLogRepository using GORM
type MedicationLogRepositoryImpl struct {
	db *gorm.DB
}

// DBMedicationLog represents the database model for an intake log entry
type DBMedicationLog struct {
	ID             string    `gorm:"primaryKey;size:36"`
	PrescriptionID string    `gorm:"index;size:36"`
	PatientID      string    `gorm:"index;size:36"`
	Status         string    `gorm:"size:16"`
	TakenAt        time.Time `gorm:"index"`

	Prescription DBPrescription `gorm:"foreignKey:PrescriptionID"`
}

func (DBMedicationLog) TableName() string {
	return "medication_logs"
}

// NewMedicationLogRepository creates a new medication log repository
func NewMedicationLogRepository(db *gorm.DB) domain.MedicationLogRepository {
	return &MedicationLogRepositoryImpl{db: db}
}

// Create implements domain.MedicationLogRepository
func (r *MedicationLogRepositoryImpl) Create(ctx context.Context, log *domain.MedicationLog) error {
	dbLog := &DBMedicationLog{
		ID:             log.ID,
		PrescriptionID: log.PrescriptionID,
		PatientID:      log.PatientID,
		Status:         string(log.Status),
		TakenAt:        log.TakenAt,
	}
	return r.db.WithContext(ctx).Create(dbLog).Error
}

// ListRecentByPatient implements domain.MedicationLogRepository,
// newest first.
func (r *MedicationLogRepositoryImpl) ListRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.MedicationLog, error) {
	var dbLogs []DBMedicationLog
	err := r.db.WithContext(ctx).
		Preload("Prescription").
		Preload("Prescription.Medicine").
		Where("patient_id = ?", patientID).
		Order("taken_at DESC").
		Limit(limit).
		Find(&dbLogs).Error
	if err != nil {
		return nil, err
	}

	logs := make([]domain.MedicationLog, 0, len(dbLogs))
	for i := range dbLogs {
		dbLog := &dbLogs[i]
		status, _ := domain.ParseIntakeStatus(dbLog.Status)
		entry := domain.MedicationLog{
			ID:             dbLog.ID,
			PrescriptionID: dbLog.PrescriptionID,
			PatientID:      dbLog.PatientID,
			Status:         status,
			TakenAt:        dbLog.TakenAt,
		}
		if dbLog.Prescription.ID != "" {
			entry.Prescription = dbToPrescription(&dbLog.Prescription)
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

// CountByPatientSince implements domain.MedicationLogRepository
func (r *MedicationLogRepositoryImpl) CountByPatientSince(ctx context.Context, patientID string, days int) (int64, error) {
	var count int64
	since := time.Now().AddDate(0, 0, -days)
	err := r.db.WithContext(ctx).Model(&DBMedicationLog{}).
		Where("patient_id = ? AND taken_at >= ?", patientID, since).
		Count(&count).Error
	return count, err
}
