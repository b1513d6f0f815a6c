package analytics

import (
	"time"

	"github.com/sohei-site/portfolio-api/stores"
)

// Trend is a period-over-period percentage change with a direction.
type Trend struct {
	Percent   int    `json:"percent"`
	Direction string `json:"direction"`
}

// ReferrerCount is one referrer bucket, counted by exact string equality.
// Visits with no referrer land in the synthetic "(direct)" bucket.
type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

// ScreenCount buckets raw screenSize strings without parsing them.
type ScreenCount struct {
	Size  string `json:"size"`
	Count int64  `json:"count"`
}

// LanguageCount buckets raw language tags verbatim; missing tags report as
// "Unknown".
type LanguageCount struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}

// DeviceBreakdown holds per-device-class visit counts.
type DeviceBreakdown struct {
	Mobile  int64 `json:"mobile"`
	Tablet  int64 `json:"tablet"`
	Desktop int64 `json:"desktop"`
}

// ContentSummary is the content store's contribution to the stats document.
type ContentSummary struct {
	TotalEntries int64      `json:"totalEntries"`
	LastUpdated  *time.Time `json:"lastUpdated"`
}

// Document is the full aggregation response. Earlier deployments served
// narrower shapes; this superset is the contract now.
type Document struct {
	TotalVisits         int64                       `json:"totalVisits"`
	PrevTotalVisits     int64                       `json:"prevTotalVisits"`
	UniqueVisitors      int64                       `json:"uniqueVisitors"`
	PrevUniqueVisitors  int64                       `json:"prevUniqueVisitors"`
	TodayVisits         int64                       `json:"todayVisits"`
	YesterdayVisits     int64                       `json:"yesterdayVisits"`
	AvgPerDay           int64                       `json:"avgPerDay"`
	VisitsTrend         Trend                       `json:"visitsTrend"`
	UniqueVisitorsTrend Trend                       `json:"uniqueVisitorsTrend"`
	ByPage              []stores.PageCount          `json:"byPage"`
	Daily               map[string]map[string]int64 `json:"daily"`
	Hourly              [24]int64                   `json:"hourly"`
	Referrers           []ReferrerCount             `json:"referrers"`
	Devices             DeviceBreakdown             `json:"devices"`
	Browsers            map[string]int64            `json:"browsers"`
	ScreenSizes         []ScreenCount               `json:"screenSizes"`
	Languages           []LanguageCount             `json:"languages"`
	ContentStats        ContentSummary              `json:"contentStats"`
}
