package controllers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sohei-site/portfolio-api/config"
	"github.com/sohei-site/portfolio-api/models"
	"github.com/sohei-site/portfolio-api/stores"
	"github.com/sohei-site/portfolio-api/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	if err := utils.InitLogger(config.AppConfig{LogLevel: "error"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeAdminStore holds at most one admin row in memory.
type fakeAdminStore struct {
	admin    *models.Admin
	firstErr error
}

func (f *fakeAdminStore) First(ctx context.Context) (*models.Admin, error) {
	if f.firstErr != nil {
		return nil, f.firstErr
	}
	return f.admin, nil
}

func (f *fakeAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = 1
	f.admin = admin
	return nil
}

func (f *fakeAdminStore) UpdatePassword(ctx context.Context, id uint, digest string) error {
	if f.admin != nil && f.admin.ID == id {
		f.admin.PasswordHash = digest
	}
	return nil
}

// fakeContentStore keeps entries in insertion order and supports failure
// injection on both write paths.
type fakeContentStore struct {
	entries  []models.Content
	batchErr error
	// oneErrFor fails UpsertOne for matching "page/key" pairs.
	oneErrFor map[string]error
	nextID    uint
}

func (f *fakeContentStore) All(ctx context.Context) ([]models.Content, error) {
	return f.entries, nil
}

func (f *fakeContentStore) ForPage(ctx context.Context, page string) ([]models.Content, error) {
	var out []models.Content
	for _, e := range f.entries {
		if e.Page == page {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeContentStore) UpsertBatch(ctx context.Context, entries []models.Content) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, e := range entries {
		if err := f.UpsertOne(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeContentStore) UpsertOne(ctx context.Context, entry models.Content) error {
	if err, ok := f.oneErrFor[entry.Page+"/"+entry.Key]; ok {
		return err
	}
	entry.UpdatedAt = time.Now()
	for i, e := range f.entries {
		if e.Page == entry.Page && e.Key == entry.Key {
			entry.ID = e.ID
			entry.CreatedAt = e.CreatedAt
			f.entries[i] = entry
			return nil
		}
	}
	f.nextID++
	entry.ID = f.nextID
	entry.CreatedAt = entry.UpdatedAt
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeContentStore) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(f.entries))
	f.entries = nil
	return n, nil
}

func (f *fakeContentStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.entries)), nil
}

func (f *fakeContentStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	var latest *time.Time
	for _, e := range f.entries {
		t := e.UpdatedAt
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}

// fakeImageStore is a (page, key) -> image map.
type fakeImageStore struct {
	images map[string]models.Image
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{images: make(map[string]models.Image)}
}

func (f *fakeImageStore) Keys(ctx context.Context, page string) ([]string, error) {
	var keys []string
	for _, img := range f.images {
		if img.Page == page {
			keys = append(keys, img.Key)
		}
	}
	return keys, nil
}

func (f *fakeImageStore) Get(ctx context.Context, page, key string) (*models.Image, error) {
	img, ok := f.images[page+"/"+key]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (f *fakeImageStore) Upsert(ctx context.Context, img *models.Image) error {
	f.images[img.Page+"/"+img.Key] = *img
	return nil
}

func (f *fakeImageStore) Delete(ctx context.Context, page, key string) (int64, error) {
	if _, ok := f.images[page+"/"+key]; !ok {
		return 0, nil
	}
	delete(f.images, page+"/"+key)
	return 1, nil
}

// fakeVisitStore captures inserts and answers every read with a zero value
// or the injected error.
type fakeVisitStore struct {
	inserted  []models.VisitorLog
	insertErr error
	readErr   error
}

func (f *fakeVisitStore) Insert(ctx context.Context, log *models.VisitorLog) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *log)
	return nil
}

func (f *fakeVisitStore) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return int64(len(f.inserted)), f.readErr
}

func (f *fakeVisitStore) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return 0, f.readErr
}

func (f *fakeVisitStore) DistinctIPsSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, f.readErr
}

func (f *fakeVisitStore) DistinctIPsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return 0, f.readErr
}

func (f *fakeVisitStore) CountByPage(ctx context.Context, since time.Time) ([]stores.PageCount, error) {
	return nil, f.readErr
}

func (f *fakeVisitStore) TimesSince(ctx context.Context, since time.Time) ([]stores.VisitTime, error) {
	return nil, f.readErr
}

func (f *fakeVisitStore) ReferrersSince(ctx context.Context, since time.Time) ([]string, error) {
	return nil, f.readErr
}

func (f *fakeVisitStore) DirectCountSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, f.readErr
}

func (f *fakeVisitStore) AgentsSince(ctx context.Context, since time.Time) ([]stores.AgentSample, error) {
	return nil, f.readErr
}

func (f *fakeVisitStore) LanguagesSince(ctx context.Context, since time.Time) ([]*string, error) {
	return nil, f.readErr
}
