// Package stores wraps all relational access behind small interfaces so the
// HTTP layer and the stats aggregator can be exercised against in-memory
// fakes. The production implementations are GORM-backed and share one pooled
// connection handle injected at composition time.
package stores

import (
	"context"
	"time"

	"github.com/sohei-site/portfolio-api/models"
)

// PageCount is one row of the visits-grouped-by-page query.
type PageCount struct {
	Page  string `json:"page"`
	Count int64  `json:"count"`
}

// VisitTime is the (createdAt, page) projection used for histogram building.
type VisitTime struct {
	CreatedAt time.Time
	Page      string
}

// AgentSample pairs a raw user-agent with the reported screen size.
type AgentSample struct {
	UserAgent  string
	ScreenSize *string
}

// VisitStore records page views and answers the windowed reads the stats
// aggregator fans out. All since/until bounds are resolved once by the caller
// so every read sees the same window.
type VisitStore interface {
	Insert(ctx context.Context, log *models.VisitorLog) error

	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	DistinctIPsSince(ctx context.Context, since time.Time) (int64, error)
	DistinctIPsBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountByPage(ctx context.Context, since time.Time) ([]PageCount, error)
	TimesSince(ctx context.Context, since time.Time) ([]VisitTime, error)
	ReferrersSince(ctx context.Context, since time.Time) ([]string, error)
	DirectCountSince(ctx context.Context, since time.Time) (int64, error)
	AgentsSince(ctx context.Context, since time.Time) ([]AgentSample, error)
	LanguagesSince(ctx context.Context, since time.Time) ([]*string, error)
}

// ContentStore is the (page, key) -> value store for editable site text.
type ContentStore interface {
	All(ctx context.Context) ([]models.Content, error)
	ForPage(ctx context.Context, page string) ([]models.Content, error)
	// UpsertBatch writes all entries atomically or not at all.
	UpsertBatch(ctx context.Context, entries []models.Content) error
	// UpsertOne writes a single entry; used by the sequential fallback path.
	UpsertOne(ctx context.Context, entry models.Content) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	LastUpdated(ctx context.Context) (*time.Time, error)
}

// AdminStore holds the single admin credential row.
type AdminStore interface {
	// First returns the first admin row, or nil when none exists.
	First(ctx context.Context) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdatePassword(ctx context.Context, id uint, digest string) error
}

// ImageStore is the (page, key) -> binary image store.
type ImageStore interface {
	Keys(ctx context.Context, page string) ([]string, error)
	// Get returns nil when no image exists for (page, key).
	Get(ctx context.Context, page, key string) (*models.Image, error)
	Upsert(ctx context.Context, img *models.Image) error
	// Delete reports how many rows were removed.
	Delete(ctx context.Context, page, key string) (int64, error)
}
