package analytics

import (
	"strconv"
	"strings"
	"time"
)

const defaultWindowDays = 7

// Window carries every time boundary one stats request needs, resolved once
// so concurrent sub-queries cannot drift apart.
type Window struct {
	Now  time.Time
	Days int
	// Since opens the current period [Since, now).
	Since time.Time
	// PrevSince opens the symmetric previous period [PrevSince, Since).
	PrevSince time.Time
	// TodayStart and YesterdayStart are UTC midnights.
	TodayStart     time.Time
	YesterdayStart time.Time
}

// ResolveWindow parses the days query parameter and derives all boundaries
// from a single now. Non-numeric or non-positive input falls back to the
// 7-day default instead of erroring.
func ResolveWindow(now time.Time, daysParam string) Window {
	days := defaultWindowDays
	if n, err := strconv.Atoi(strings.TrimSpace(daysParam)); err == nil && n > 0 {
		days = n
	}

	span := time.Duration(days) * 24 * time.Hour
	since := now.Add(-span)

	utc := now.UTC()
	todayStart := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	return Window{
		Now:            now,
		Days:           days,
		Since:          since,
		PrevSince:      since.Add(-span),
		TodayStart:     todayStart,
		YesterdayStart: todayStart.AddDate(0, 0, -1),
	}
}
