package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// PrescriptionRepositoryImpl implements domain.PrescriptionRepository using GORM
type PrescriptionRepositoryImpl struct {
	db *gorm.DB
}

// DBPrescription represents the database model for a prescription
type DBPrescription struct {
	ID           string `gorm:"primaryKey;size:36"`
	PatientID    string `gorm:"index;size:36"`
	NurseID      string `gorm:"index;size:36"`
	MedicineID   string `gorm:"index;size:36"`
	Dosage       string `gorm:"size:255"`
	Frequency    string `gorm:"size:255"`
	Instructions string
	Active       bool `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Medicine DBMedicine `gorm:"foreignKey:MedicineID"`
}

func (DBPrescription) TableName() string {
	return "prescriptions"
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(db *gorm.DB) domain.PrescriptionRepository {
	return &PrescriptionRepositoryImpl{db: db}
}

// Create implements domain.PrescriptionRepository
func (r *PrescriptionRepositoryImpl) Create(ctx context.Context, prescription *domain.Prescription) error {
	dbRx := &DBPrescription{
		ID:           prescription.ID,
		PatientID:    prescription.PatientID,
		NurseID:      prescription.NurseID,
		MedicineID:   prescription.MedicineID,
		Dosage:       prescription.Dosage,
		Frequency:    prescription.Frequency,
		Instructions: prescription.Instructions,
		Active:       prescription.Active,
	}
	if err := r.db.WithContext(ctx).Create(dbRx).Error; err != nil {
		return err
	}
	prescription.CreatedAt = dbRx.CreatedAt
	prescription.UpdatedAt = dbRx.UpdatedAt
	return nil
}

// FindByID implements domain.PrescriptionRepository
func (r *PrescriptionRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Prescription, error) {
	var dbRx DBPrescription
	err := r.db.WithContext(ctx).Preload("Medicine").Where("id = ?", id).First(&dbRx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrescriptionNotFound
		}
		return nil, err
	}
	return dbToPrescription(&dbRx), nil
}

// ListActiveByPatient implements domain.PrescriptionRepository
func (r *PrescriptionRepositoryImpl) ListActiveByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	var dbRxs []DBPrescription
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Where("patient_id = ? AND active = ?", patientID, true).
		Order("created_at DESC").
		Find(&dbRxs).Error
	if err != nil {
		return nil, err
	}
	prescriptions := make([]domain.Prescription, 0, len(dbRxs))
	for i := range dbRxs {
		prescriptions = append(prescriptions, *dbToPrescription(&dbRxs[i]))
	}
	return prescriptions, nil
}

// CountActiveByPatient implements domain.PrescriptionRepository
func (r *PrescriptionRepositoryImpl) CountActiveByPatient(ctx context.Context, patientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBPrescription{}).
		Where("patient_id = ? AND active = ?", patientID, true).
		Count(&count).Error
	return count, err
}

// Deactivate implements domain.PrescriptionRepository
func (r *PrescriptionRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&DBPrescription{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPrescriptionNotFound
	}
	return nil
}

// Count implements domain.PrescriptionRepository
func (r *PrescriptionRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBPrescription{}).Count(&count).Error
	return count, err
}

func dbToPrescription(rx *DBPrescription) *domain.Prescription {
	p := &domain.Prescription{
		ID:           rx.ID,
		PatientID:    rx.PatientID,
		NurseID:      rx.NurseID,
		MedicineID:   rx.MedicineID,
		Dosage:       rx.Dosage,
		Frequency:    rx.Frequency,
		Instructions: rx.Instructions,
		Active:       rx.Active,
		CreatedAt:    rx.CreatedAt,
		UpdatedAt:    rx.UpdatedAt,
	}
	if rx.Medicine.ID != "" {
		p.Medicine = dbToMedicine(&rx.Medicine)
	}
	return p
}
