package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/sohei-site/portfolio-api/stores"
)

const (
	topReferrers = 20
	topScreens   = 10
	topLanguages = 10

	directBucket    = "(direct)"
	unknownLanguage = "Unknown"
)

// ComputeTrend compares a current count against the previous period. With no
// previous baseline, any activity reads as a full 100% increase.
func ComputeTrend(current, previous int64) Trend {
	var percent int
	switch {
	case previous > 0:
		percent = int(math.Round(math.Abs(float64(current-previous)) / float64(previous) * 100))
	case current > 0:
		percent = 100
	}

	direction := "flat"
	if current > previous {
		direction = "up"
	} else if current < previous {
		direction = "down"
	}

	return Trend{Percent: percent, Direction: direction}
}

// AveragePerDay rounds totalVisits over the window length.
func AveragePerDay(totalVisits int64, days int) int64 {
	if days <= 0 {
		return 0
	}
	return int64(math.Round(float64(totalVisits) / float64(days)))
}

// BuildDaily buckets visits by UTC calendar date. Each bucket holds per-page
// counts plus a "total" key.
func BuildDaily(rows []stores.VisitTime) map[string]map[string]int64 {
	daily := make(map[string]map[string]int64)
	for _, row := range rows {
		date := row.CreatedAt.UTC().Format("2006-01-02")
		bucket, ok := daily[date]
		if !ok {
			bucket = make(map[string]int64)
			daily[date] = bucket
		}
		bucket[row.Page]++
		bucket["total"]++
	}
	return daily
}

// BuildHourly counts visits per hour-of-day in the given location.
func BuildHourly(rows []stores.VisitTime, loc *time.Location) [24]int64 {
	var hourly [24]int64
	for _, row := range rows {
		hourly[row.CreatedAt.In(loc).Hour()]++
	}
	return hourly
}

// BuildReferrers groups referrers by exact string equality, folds the
// no-referrer count into "(direct)" and keeps the top entries. No domain
// normalization happens here on purpose.
func BuildReferrers(referrers []string, directCount int64) []ReferrerCount {
	counts := make(map[string]int64, len(referrers))
	for _, ref := range referrers {
		counts[ref]++
	}
	if directCount > 0 {
		counts[directBucket] += directCount
	}

	out := make([]ReferrerCount, 0, len(counts))
	for ref, n := range counts {
		out = append(out, ReferrerCount{Referrer: ref, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Referrer < out[j].Referrer
	})
	if len(out) > topReferrers {
		out = out[:topReferrers]
	}
	return out
}

// BuildAgentBreakdown runs every sampled user-agent through the classifier
// and accumulates device, browser and raw screen-size histograms.
func BuildAgentBreakdown(samples []stores.AgentSample, clf Classifier) (DeviceBreakdown, map[string]int64, []ScreenCount) {
	var devices DeviceBreakdown
	browsers := make(map[string]int64)
	screens := make(map[string]int64)

	for _, sample := range samples {
		c := clf.Classify(sample.UserAgent)
		switch c.Device {
		case DeviceMobile:
			devices.Mobile++
		case DeviceTablet:
			devices.Tablet++
		default:
			devices.Desktop++
		}
		browsers[c.Browser]++
		if sample.ScreenSize != nil && *sample.ScreenSize != "" {
			screens[*sample.ScreenSize]++
		}
	}

	out := make([]ScreenCount, 0, len(screens))
	for size, n := range screens {
		out = append(out, ScreenCount{Size: size, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Size < out[j].Size
	})
	if len(out) > topScreens {
		out = out[:topScreens]
	}
	return devices, browsers, out
}

// BuildLanguages buckets raw language tags verbatim; nil or empty tags count
// under "Unknown".
func BuildLanguages(languages []*string) []LanguageCount {
	counts := make(map[string]int64)
	for _, lang := range languages {
		if lang == nil || *lang == "" {
			counts[unknownLanguage]++
		} else {
			counts[*lang]++
		}
	}

	out := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	if len(out) > topLanguages {
		out = out[:topLanguages]
	}
	return out
}
