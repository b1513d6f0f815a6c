package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sohei-site/portfolio-api/models"
	"github.com/sohei-site/portfolio-api/stores"
	"github.com/sohei-site/portfolio-api/utils"
)

const contentCachePrefix = "cache:content:"

// ContentController serves and mutates the (page, key) -> value text store.
type ContentController struct {
	content stores.ContentStore
}

// NewContentController creates a new ContentController instance.
func NewContentController(content stores.ContentStore) *ContentController {
	return &ContentController{content: content}
}

// GetAll returns every content entry grouped by page. Public.
func (c *ContentController) GetAll(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(contentCachePrefix + "all"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	entries, err := c.content.All(ctx.Request.Context())
	if err != nil {
		utils.Sugar.Errorf("content read failed: %v", err)
		failStore(ctx, err, "failed to read content")
		return
	}

	grouped := make(map[string]map[string]string)
	for _, entry := range entries {
		if grouped[entry.Page] == nil {
			grouped[entry.Page] = make(map[string]string)
		}
		grouped[entry.Page][entry.Key] = entry.Value
	}

	utils.CacheSetJSON(contentCachePrefix+"all", grouped, 5*time.Minute)
	ctx.JSON(http.StatusOK, grouped)
}

// GetPage returns the key/value pairs for one page. Public.
func (c *ContentController) GetPage(ctx *gin.Context) {
	page := ctx.Param("page")
	if b, ok := utils.CacheGetBytes(contentCachePrefix + "page:" + page); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	entries, err := c.content.ForPage(ctx.Request.Context(), page)
	if err != nil {
		utils.Sugar.Errorf("content read failed for page %s: %v", page, err)
		failStore(ctx, err, "failed to read content")
		return
	}

	result := make(map[string]string, len(entries))
	for _, entry := range entries {
		result[entry.Key] = entry.Value
	}

	utils.CacheSetJSON(contentCachePrefix+"page:"+page, result, 5*time.Minute)
	ctx.JSON(http.StatusOK, result)
}

// UpdatePage upserts a batch of key/value pairs for one page.
func (c *ContentController) UpdatePage(ctx *gin.Context) {
	page := ctx.Param("page")

	var body map[string]any
	if err := ctx.ShouldBindJSON(&body); err != nil {
		utils.FailCode(ctx, http.StatusBadRequest, "invalid request payload", "INVALID_INPUT", false)
		return
	}

	entries := make([]models.Content, 0, len(body))
	for key, value := range body {
		entries = append(entries, models.Content{
			Page:  page,
			Key:   key,
			Value: utils.Sanitize(asString(value)),
		})
	}

	if ok := c.writeBatch(ctx, entries); !ok {
		return
	}

	utils.InvalidateByPrefix(contentCachePrefix)
	ctx.JSON(http.StatusOK, gin.H{"message": "content saved for " + page, "count": len(entries)})
}

// Import bulk-upserts content across all pages from one JSON document.
func (c *ContentController) Import(ctx *gin.Context) {
	var body map[string]map[string]any
	if err := ctx.ShouldBindJSON(&body); err != nil {
		utils.FailCode(ctx, http.StatusBadRequest, "invalid request payload", "INVALID_INPUT", false)
		return
	}

	var entries []models.Content
	for page, pairs := range body {
		for key, value := range pairs {
			entries = append(entries, models.Content{
				Page:  page,
				Key:   key,
				Value: utils.Sanitize(asString(value)),
			})
		}
	}

	if ok := c.writeBatch(ctx, entries); !ok {
		return
	}

	utils.InvalidateByPrefix(contentCachePrefix)
	ctx.JSON(http.StatusOK, gin.H{"message": "content imported", "count": len(entries)})
}

// DeleteAll wipes every content entry and reports the number removed.
func (c *ContentController) DeleteAll(ctx *gin.Context) {
	count, err := c.content.DeleteAll(ctx.Request.Context())
	if err != nil {
		utils.Sugar.Errorf("content wipe failed: %v", err)
		failStore(ctx, err, "failed to delete content")
		return
	}

	utils.InvalidateByPrefix(contentCachePrefix)
	ctx.JSON(http.StatusOK, gin.H{"message": "all content deleted", "count": count})
}

// writeBatch tries the all-or-nothing transactional write first and only
// falls back to sequential best-effort writes when the transaction itself
// failed for store-level reasons. The fallback retries per item; whatever
// still fails after that is reported in the error detail rather than hidden.
// Returns true when a success response was written.
func (c *ContentController) writeBatch(ctx *gin.Context, entries []models.Content) bool {
	reqCtx := ctx.Request.Context()

	err := c.content.UpsertBatch(reqCtx, entries)
	if err == nil {
		return true
	}
	if !stores.IsTransient(err) {
		utils.Sugar.Errorf("content batch write failed: %v", err)
		failStore(ctx, err, "failed to save content")
		return false
	}

	utils.Sugar.Warnf("transactional content write failed, falling back to sequential: %v", err)

	var failed []string
	for _, entry := range entries {
		entry := entry
		itemErr := utils.Retry(reqCtx, 3, 100*time.Millisecond, stores.IsTransient, func() error {
			return c.content.UpsertOne(reqCtx, entry)
		})
		if itemErr != nil {
			utils.Sugar.Errorf("sequential write failed for %s/%s: %v", entry.Page, entry.Key, itemErr)
			failed = append(failed, entry.Page+"/"+entry.Key)
		}
	}

	if len(failed) > 0 {
		utils.FailDetail(ctx, http.StatusInternalServerError, "content partially saved",
			"entries not written: "+strings.Join(failed, ", "))
		return false
	}
	return true
}

// asString coerces arbitrary JSON values to their stored string form, the
// same way the dashboard's import format expects.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
