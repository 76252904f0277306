package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// ProfileRepositoryImpl implements domain.ProfileRepository using GORM
type ProfileRepositoryImpl struct {
	db *gorm.DB
}

// DBProfile represents the database model for Profile
type DBProfile struct {
	UserID    string `gorm:"primaryKey;size:36"`
	FirstName string `gorm:"size:255"`
	LastName  string `gorm:"size:255"`
	Phone     string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DBProfile) TableName() string {
	return "profiles"
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// Create implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *domain.Profile) error {
	dbProfile := &DBProfile{
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Phone:     profile.Phone,
	}
	if err := r.db.WithContext(ctx).Create(dbProfile).Error; err != nil {
		return err
	}
	profile.CreatedAt = dbProfile.CreatedAt
	profile.UpdatedAt = dbProfile.UpdatedAt
	return nil
}

// FindByUserID implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var dbProfile DBProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbProfile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return dbToProfile(&dbProfile), nil
}

// Update implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Model(&DBProfile{}).Where("user_id = ?", profile.UserID).Updates(map[string]interface{}{
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
		"phone":      profile.Phone,
	}).Error
}

// ListWithRoles implements domain.ProfileRepository. Used by the admin
// user directory; joins users, profiles and role assignments.
func (r *ProfileRepositoryImpl) ListWithRoles(ctx context.Context) ([]domain.UserAccount, error) {
	type row struct {
		DBUser
		FirstName string
		LastName  string
		Phone     string
		Role      string
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, profiles.first_name, profiles.last_name, profiles.phone, user_roles.role").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Joins("LEFT JOIN user_roles ON user_roles.user_id = users.id").
		Where("users.deleted_at IS NULL").
		Order("profiles.last_name, profiles.first_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.UserAccount, 0, len(rows))
	for _, rw := range rows {
		accounts = append(accounts, domain.UserAccount{
			User: domain.User{
				ID:            rw.ID,
				Email:         rw.Email,
				IsActive:      rw.IsActive,
				EmailVerified: rw.EmailVerified,
				CreatedAt:     rw.DBUser.CreatedAt,
				UpdatedAt:     rw.DBUser.UpdatedAt,
			},
			Profile: domain.Profile{
				UserID:    rw.ID,
				FirstName: rw.FirstName,
				LastName:  rw.LastName,
				Phone:     rw.Phone,
			},
			Role: domain.ParseRole(rw.Role),
		})
	}
	return accounts, nil
}

func dbToProfile(p *DBProfile) *domain.Profile {
	return &domain.Profile{
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
