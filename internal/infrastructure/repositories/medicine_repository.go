package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// MedicineRepositoryImpl implements domain.MedicineRepository using GORM
type MedicineRepositoryImpl struct {
	db *gorm.DB
}

// DBMedicine represents the database model for a catalog medicine
type DBMedicine struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"uniqueIndex;size:255"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (DBMedicine) TableName() string {
	return "medicines"
}

// NewMedicineRepository creates a new medicine repository
func NewMedicineRepository(db *gorm.DB) domain.MedicineRepository {
	return &MedicineRepositoryImpl{db: db}
}

// Create implements domain.MedicineRepository
func (r *MedicineRepositoryImpl) Create(ctx context.Context, medicine *domain.Medicine) error {
	dbMed := &DBMedicine{
		ID:          medicine.ID,
		Name:        medicine.Name,
		Description: medicine.Description,
	}
	if err := r.db.WithContext(ctx).Create(dbMed).Error; err != nil {
		return err
	}
	medicine.CreatedAt = dbMed.CreatedAt
	medicine.UpdatedAt = dbMed.UpdatedAt
	return nil
}

// FindByID implements domain.MedicineRepository
func (r *MedicineRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Medicine, error) {
	var dbMed DBMedicine
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbMed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMedicineNotFound
		}
		return nil, err
	}
	return dbToMedicine(&dbMed), nil
}

// List implements domain.MedicineRepository
func (r *MedicineRepositoryImpl) List(ctx context.Context) ([]domain.Medicine, error) {
	var dbMeds []DBMedicine
	if err := r.db.WithContext(ctx).Order("name").Find(&dbMeds).Error; err != nil {
		return nil, err
	}
	medicines := make([]domain.Medicine, 0, len(dbMeds))
	for i := range dbMeds {
		medicines = append(medicines, *dbToMedicine(&dbMeds[i]))
	}
	return medicines, nil
}

// Delete implements domain.MedicineRepository
func (r *MedicineRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBMedicine{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMedicineNotFound
	}
	return nil
}

// Count implements domain.MedicineRepository
func (r *MedicineRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBMedicine{}).Count(&count).Error
	return count, err
}

func dbToMedicine(m *DBMedicine) *domain.Medicine {
	return &domain.Medicine{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
