package stores

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sohei-site/portfolio-api/models"
)

// GormVisitStore implements VisitStore on the shared GORM handle.
type GormVisitStore struct {
	db *gorm.DB
}

// NewGormVisitStore wraps the injected DB handle.
func NewGormVisitStore(db *gorm.DB) *GormVisitStore {
	return &GormVisitStore{db: db}
}

func (s *GormVisitStore) Insert(ctx context.Context, log *models.VisitorLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *GormVisitStore) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Where("created_at >= ?", since).
		Count(&n).Error
	return n, err
}

func (s *GormVisitStore) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

func (s *GormVisitStore) DistinctIPsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Where("created_at >= ? AND ip_address IS NOT NULL", since).
		Distinct("ip_address").
		Count(&n).Error
	return n, err
}

func (s *GormVisitStore) DistinctIPsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Where("created_at >= ? AND created_at < ? AND ip_address IS NOT NULL", from, to).
		Distinct("ip_address").
		Count(&n).Error
	return n, err
}

func (s *GormVisitStore) CountByPage(ctx context.Context, since time.Time) ([]PageCount, error) {
	var rows []PageCount
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Select("page, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("page").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *GormVisitStore) TimesSince(ctx context.Context, since time.Time) ([]VisitTime, error) {
	var rows []VisitTime
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Select("created_at, page").
		Where("created_at >= ?", since).
		Scan(&rows).Error
	return rows, err
}

func (s *GormVisitStore) ReferrersSince(ctx context.Context, since time.Time) ([]string, error) {
	var refs []string
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Where("created_at >= ? AND referrer IS NOT NULL AND referrer <> ''", since).
		Pluck("referrer", &refs).Error
	return refs, err
}

func (s *GormVisitStore) DirectCountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Where("created_at >= ? AND (referrer IS NULL OR referrer = '')", since).
		Count(&n).Error
	return n, err
}

func (s *GormVisitStore) AgentsSince(ctx context.Context, since time.Time) ([]AgentSample, error) {
	var rows []AgentSample
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Select("user_agent, screen_size").
		Where("created_at >= ? AND user_agent IS NOT NULL", since).
		Scan(&rows).Error
	return rows, err
}

func (s *GormVisitStore) LanguagesSince(ctx context.Context, since time.Time) ([]*string, error) {
	var langs []*string
	err := s.db.WithContext(ctx).Model(&models.VisitorLog{}).
		Where("created_at >= ?", since).
		Pluck("language", &langs).Error
	return langs, err
}
