package stores

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sohei-site/portfolio-api/models"
)

// GormAdminStore implements AdminStore on the shared GORM handle.
type GormAdminStore struct {
	db *gorm.DB
}

// NewGormAdminStore wraps the injected DB handle.
func NewGormAdminStore(db *gorm.DB) *GormAdminStore {
	return &GormAdminStore{db: db}
}

func (s *GormAdminStore) First(ctx context.Context) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Order("id ASC").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *GormAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	return s.db.WithContext(ctx).Create(admin).Error
}

func (s *GormAdminStore) UpdatePassword(ctx context.Context, id uint, digest string) error {
	return s.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", id).
		Update("password_hash", digest).Error
}
