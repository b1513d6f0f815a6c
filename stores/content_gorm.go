package stores

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sohei-site/portfolio-api/models"
)

// GormContentStore implements ContentStore on the shared GORM handle.
type GormContentStore struct {
	db *gorm.DB
}

// NewGormContentStore wraps the injected DB handle.
func NewGormContentStore(db *gorm.DB) *GormContentStore {
	return &GormContentStore{db: db}
}

// contentConflict makes a second write to an existing (page, key) replace the
// value and bump updated_at instead of failing on the unique index.
var contentConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "page"}, {Name: "key"}},
	DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
}

func (s *GormContentStore) All(ctx context.Context) ([]models.Content, error) {
	var entries []models.Content
	err := s.db.WithContext(ctx).
		Order("page ASC, `key` ASC").
		Find(&entries).Error
	return entries, err
}

func (s *GormContentStore) ForPage(ctx context.Context, page string) ([]models.Content, error) {
	var entries []models.Content
	err := s.db.WithContext(ctx).
		Where("page = ?", page).
		Order("`key` ASC").
		Find(&entries).Error
	return entries, err
}

func (s *GormContentStore) UpsertBatch(ctx context.Context, entries []models.Content) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(contentConflict).Create(&entries).Error
	})
}

func (s *GormContentStore) UpsertOne(ctx context.Context, entry models.Content) error {
	return s.db.WithContext(ctx).Clauses(contentConflict).Create(&entry).Error
}

func (s *GormContentStore) DeleteAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Content{})
	return res.RowsAffected, res.Error
}

func (s *GormContentStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Content{}).Count(&n).Error
	return n, err
}

func (s *GormContentStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	var row struct {
		Last *time.Time
	}
	err := s.db.WithContext(ctx).Model(&models.Content{}).
		Select("MAX(updated_at) AS last").
		Scan(&row).Error
	return row.Last, err
}
