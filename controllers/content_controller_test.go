package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sohei-site/portfolio-api/middleware"
	"github.com/sohei-site/portfolio-api/models"
	"github.com/sohei-site/portfolio-api/utils"
)

func contentRouter(content *fakeContentStore) *gin.Engine {
	ctrl := NewContentController(content)
	r := gin.New()
	r.GET("/api/content", ctrl.GetAll)
	r.GET("/api/content/:page", ctrl.GetPage)
	r.PUT("/api/content/:page", middleware.AuthRequired(), ctrl.UpdatePage)
	r.POST("/api/content/import", middleware.AuthRequired(), ctrl.Import)
	r.DELETE("/api/content", middleware.AuthRequired(), ctrl.DeleteAll)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := utils.GenerateToken(1, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func TestGetContent(t *testing.T) {
	store := &fakeContentStore{entries: []models.Content{
		{ID: 1, Page: "index", Key: "title", Value: "hello"},
		{ID: 2, Page: "index", Key: "subtitle", Value: "world"},
		{ID: 3, Page: "work", Key: "title", Value: "projects"},
	}}
	r := contentRouter(store)

	t.Run("all entries grouped by page", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/content", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var grouped map[string]map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &grouped); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if grouped["index"]["title"] != "hello" || grouped["work"]["title"] != "projects" {
			t.Errorf("grouped = %v", grouped)
		}
	})

	t.Run("single page as flat key/value map", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/content/index", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var page map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(page) != 2 || page["subtitle"] != "world" {
			t.Errorf("page = %v", page)
		}
	})

	t.Run("unknown page is an empty map, not 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/content/missing", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if body := strings.TrimSpace(w.Body.String()); body != "{}" {
			t.Errorf("body = %s, want {}", body)
		}
	})
}

func TestUpdatePage(t *testing.T) {
	t.Run("writes sanitized values", func(t *testing.T) {
		store := &fakeContentStore{}
		r := contentRouter(store)

		w := doJSON(t, r, http.MethodPut, "/api/content/index",
			`{"title":"hello <script>alert(1)</script>world","count":5}`, adminToken(t))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if len(store.entries) != 2 {
			t.Fatalf("stored %d entries, want 2", len(store.entries))
		}
		byKey := map[string]string{}
		for _, e := range store.entries {
			if e.Page != "index" {
				t.Errorf("entry stored under page %q", e.Page)
			}
			byKey[e.Key] = e.Value
		}
		if strings.Contains(byKey["title"], "<script>") {
			t.Errorf("script tag survived sanitization: %q", byKey["title"])
		}
		if !strings.Contains(byKey["title"], "hello") {
			t.Errorf("text content lost during sanitization: %q", byKey["title"])
		}
		if byKey["count"] != "5" {
			t.Errorf("count = %q, want coerced string \"5\"", byKey["count"])
		}
	})

	t.Run("repeated writes replace in place", func(t *testing.T) {
		store := &fakeContentStore{}
		r := contentRouter(store)

		doJSON(t, r, http.MethodPut, "/api/content/index", `{"title":"first"}`, adminToken(t))
		firstUpdated := store.entries[0].UpdatedAt

		w := doJSON(t, r, http.MethodPut, "/api/content/index", `{"title":"second"}`, adminToken(t))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if len(store.entries) != 1 {
			t.Fatalf("stored %d entries after two writes of one key, want 1", len(store.entries))
		}
		if store.entries[0].Value != "second" {
			t.Errorf("Value = %q, want second", store.entries[0].Value)
		}
		if store.entries[0].UpdatedAt.Before(firstUpdated) {
			t.Error("UpdatedAt went backwards on replace")
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		r := contentRouter(&fakeContentStore{})
		w := doJSON(t, r, http.MethodPut, "/api/content/index", `{"title":"x"}`, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		r := contentRouter(&fakeContentStore{})
		w := doJSON(t, r, http.MethodPut, "/api/content/index", `["not","a","map"]`, adminToken(t))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestWriteBatchFallback(t *testing.T) {
	transient := errors.New("dial tcp 10.0.0.5:3306: connection refused")

	t.Run("sequential fallback recovers a failed transaction", func(t *testing.T) {
		store := &fakeContentStore{batchErr: transient}
		r := contentRouter(store)

		w := doJSON(t, r, http.MethodPut, "/api/content/index", `{"title":"hello"}`, adminToken(t))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if len(store.entries) != 1 || store.entries[0].Value != "hello" {
			t.Errorf("entries = %v, want the fallback write to land", store.entries)
		}
	})

	t.Run("residual failures are reported, not hidden", func(t *testing.T) {
		store := &fakeContentStore{
			batchErr:  transient,
			oneErrFor: map[string]error{"index/broken": transient},
		}
		r := contentRouter(store)

		w := doJSON(t, r, http.MethodPut, "/api/content/index",
			`{"title":"hello","broken":"nope"}`, adminToken(t))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
		body := decodeError(t, w)
		if body.Error != "content partially saved" {
			t.Errorf("error = %q", body.Error)
		}
		if !strings.Contains(body.Detail, "index/broken") {
			t.Errorf("detail = %q, want the failed entry named", body.Detail)
		}
		// the healthy entry still landed
		if len(store.entries) != 1 || store.entries[0].Key != "title" {
			t.Errorf("entries = %v, want title written despite the partial failure", store.entries)
		}
	})

	t.Run("permanent batch errors fail without fallback", func(t *testing.T) {
		store := &fakeContentStore{batchErr: errors.New("Error 1406: Data too long")}
		r := contentRouter(store)

		w := doJSON(t, r, http.MethodPut, "/api/content/index", `{"title":"hello"}`, adminToken(t))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
		if len(store.entries) != 0 {
			t.Errorf("entries = %v, want no sequential fallback on a permanent error", store.entries)
		}
	})
}

func TestImport(t *testing.T) {
	store := &fakeContentStore{}
	r := contentRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/content/import",
		`{"index":{"title":"hello"},"work":{"title":"projects","intro":"stuff"}}`, adminToken(t))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 3 || len(store.entries) != 3 {
		t.Errorf("count = %d, stored = %d, want 3", resp.Count, len(store.entries))
	}
}

func TestDeleteAllContent(t *testing.T) {
	store := &fakeContentStore{entries: []models.Content{
		{ID: 1, Page: "index", Key: "title", Value: "hello"},
		{ID: 2, Page: "work", Key: "title", Value: "projects"},
	}}
	r := contentRouter(store)

	w := doJSON(t, r, http.MethodDelete, "/api/content", "", adminToken(t))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	if len(store.entries) != 0 {
		t.Errorf("%d entries survived the wipe", len(store.entries))
	}
}
