package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// NursePatientRepositoryImpl implements domain.NursePatientRepository using GORM
type NursePatientRepositoryImpl struct {
	db *gorm.DB
}

// DBNursePatient represents the database model for a care assignment
type DBNursePatient struct {
	NurseID   string `gorm:"primaryKey;size:36"`
	PatientID string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
}

func (DBNursePatient) TableName() string {
	return "nurse_patients"
}

// NewNursePatientRepository creates a new care assignment repository
func NewNursePatientRepository(db *gorm.DB) domain.NursePatientRepository {
	return &NursePatientRepositoryImpl{db: db}
}

// Assign implements domain.NursePatientRepository
func (r *NursePatientRepositoryImpl) Assign(ctx context.Context, assignment *domain.NursePatient) error {
	dbAssignment := &DBNursePatient{
		NurseID:   assignment.NurseID,
		PatientID: assignment.PatientID,
	}
	return r.db.WithContext(ctx).Create(dbAssignment).Error
}

// Unassign implements domain.NursePatientRepository
func (r *NursePatientRepositoryImpl) Unassign(ctx context.Context, nurseID, patientID string) error {
	return r.db.WithContext(ctx).
		Where("nurse_id = ? AND patient_id = ?", nurseID, patientID).
		Delete(&DBNursePatient{}).Error
}

// IsAssigned implements domain.NursePatientRepository
func (r *NursePatientRepositoryImpl) IsAssigned(ctx context.Context, nurseID, patientID string) (bool, error) {
	var dbAssignment DBNursePatient
	err := r.db.WithContext(ctx).
		Where("nurse_id = ? AND patient_id = ?", nurseID, patientID).
		First(&dbAssignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListPatients implements domain.NursePatientRepository, returning the
// profiles of the nurse's assigned patients.
func (r *NursePatientRepositoryImpl) ListPatients(ctx context.Context, nurseID string) ([]domain.Profile, error) {
	var dbProfiles []DBProfile
	err := r.db.WithContext(ctx).
		Table("profiles").
		Joins("JOIN nurse_patients ON nurse_patients.patient_id = profiles.user_id").
		Where("nurse_patients.nurse_id = ?", nurseID).
		Order("profiles.last_name, profiles.first_name").
		Scan(&dbProfiles).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(dbProfiles))
	for i := range dbProfiles {
		profiles = append(profiles, *dbToProfile(&dbProfiles[i]))
	}
	return profiles, nil
}
