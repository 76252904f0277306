package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// RoleRepositoryImpl implements domain.RoleRepository using GORM
type RoleRepositoryImpl struct {
	db *gorm.DB
}

// DBRoleAssignment represents the database model for a user's role
type DBRoleAssignment struct {
	UserID    string `gorm:"primaryKey;size:36"`
	Role      string `gorm:"index;size:32"`
	CreatedAt time.Time
}

func (DBRoleAssignment) TableName() string {
	return "user_roles"
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) domain.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

// Assign implements domain.RoleRepository
func (r *RoleRepositoryImpl) Assign(ctx context.Context, assignment *domain.RoleAssignment) error {
	dbRole := &DBRoleAssignment{
		UserID: assignment.UserID,
		Role:   assignment.Role.String(),
	}
	return r.db.WithContext(ctx).Create(dbRole).Error
}

// FindByUserID implements domain.RoleRepository. The user_id is the
// primary key, so at most one row can exist per user.
func (r *RoleRepositoryImpl) FindByUserID(ctx context.Context, userID string) (domain.Role, error) {
	var dbRole DBRoleAssignment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbRole).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoleUnknown, domain.ErrRoleNotFound
		}
		return domain.RoleUnknown, err
	}
	return domain.ParseRole(dbRole.Role), nil
}

// CountByRole implements domain.RoleRepository
func (r *RoleRepositoryImpl) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBRoleAssignment{}).Where("role = ?", role.String()).Count(&count).Error
	return count, err
}
