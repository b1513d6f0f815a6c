package stores

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sohei-site/portfolio-api/models"
)

// GormImageStore implements ImageStore on the shared GORM handle.
type GormImageStore struct {
	db *gorm.DB
}

// NewGormImageStore wraps the injected DB handle.
func NewGormImageStore(db *gorm.DB) *GormImageStore {
	return &GormImageStore{db: db}
}

var imageConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "page"}, {Name: "key"}},
	DoUpdates: clause.AssignmentColumns([]string{"data", "mime_type", "updated_at"}),
}

func (s *GormImageStore) Keys(ctx context.Context, page string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).Model(&models.Image{}).
		Where("page = ?", page).
		Order("`key` ASC").
		Pluck("`key`", &keys).Error
	return keys, err
}

func (s *GormImageStore) Get(ctx context.Context, page, key string) (*models.Image, error) {
	var img models.Image
	err := s.db.WithContext(ctx).
		Where("page = ? AND `key` = ?", page, key).
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *GormImageStore) Upsert(ctx context.Context, img *models.Image) error {
	return s.db.WithContext(ctx).Clauses(imageConflict).Create(img).Error
}

func (s *GormImageStore) Delete(ctx context.Context, page, key string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("page = ? AND `key` = ?", page, key).
		Delete(&models.Image{})
	return res.RowsAffected, res.Error
}
