package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sohei-site/portfolio-api/analytics"
	"github.com/sohei-site/portfolio-api/models"
	"github.com/sohei-site/portfolio-api/stores"
	"github.com/sohei-site/portfolio-api/utils"
)

// AnalyticsController records visits and serves the aggregated stats
// document to the admin dashboard.
type AnalyticsController struct {
	visits     stores.VisitStore
	aggregator *analytics.Aggregator
}

// NewAnalyticsController creates a new AnalyticsController instance.
func NewAnalyticsController(visits stores.VisitStore, aggregator *analytics.Aggregator) *AnalyticsController {
	return &AnalyticsController{visits: visits, aggregator: aggregator}
}

// LogVisit appends one VisitorLog row per call. Public, unauthenticated and
// deliberately unfiltered: rapid double-fires and bots all count.
func (a *AnalyticsController) LogVisit(ctx *gin.Context) {
	type request struct {
		Page       string  `json:"page"`
		Referrer   *string `json:"referrer"`
		ScreenSize *string `json:"screenSize"`
		Language   *string `json:"language"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FailCode(ctx, http.StatusBadRequest, "invalid request payload", "INVALID_INPUT", false)
		return
	}
	if strings.TrimSpace(req.Page) == "" {
		utils.FailCode(ctx, http.StatusBadRequest, "page is required", "INVALID_INPUT", false)
		return
	}

	log := models.VisitorLog{
		Page:       req.Page,
		Referrer:   req.Referrer,
		ScreenSize: req.ScreenSize,
		Language:   req.Language,
	}
	if ua := ctx.Request.UserAgent(); ua != "" {
		log.UserAgent = &ua
	}
	if ip := ctx.ClientIP(); ip != "" {
		log.IPAddress = &ip
	}

	if err := a.visits.Insert(ctx.Request.Context(), &log); err != nil {
		utils.Sugar.Errorf("log visit failed: %v", err)
		failStore(ctx, err, "failed to record visit")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// GetStats computes and returns the aggregation document for ?days=N.
func (a *AnalyticsController) GetStats(ctx *gin.Context) {
	doc, err := a.aggregator.Stats(ctx.Request.Context(), ctx.Query("days"))
	if err != nil {
		utils.Sugar.Errorf("stats aggregation failed: %v", err)
		failStore(ctx, err, "failed to compute stats")
		return
	}
	ctx.JSON(http.StatusOK, doc)
}

// failStore maps a store-layer error onto the response taxonomy. Cold-start
// and timeout conditions come back retryable so the dashboard can wait and
// re-request instead of giving up.
func failStore(ctx *gin.Context, err error, msg string) {
	switch {
	case stores.IsColdStart(err):
		utils.FailCode(ctx, http.StatusServiceUnavailable, "database is waking up, please retry", "DATABASE_COLD_START", true)
	case errors.Is(err, context.DeadlineExceeded):
		utils.FailCode(ctx, http.StatusServiceUnavailable, "database query timed out, please retry", "DATABASE_TIMEOUT", true)
	default:
		utils.FailCode(ctx, http.StatusInternalServerError, msg, "INTERNAL", false)
	}
}
