package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sohei-site/portfolio-api/stores"
	"github.com/sohei-site/portfolio-api/utils"
)

// Options tune the aggregation budget. Zero values fall back to defaults.
type Options struct {
	// Timeout bounds the whole read batch; on expiry the request fails as a
	// whole rather than returning a partial document.
	Timeout       time.Duration
	RetryAttempts int
	RetryBase     time.Duration
	Classifier    Classifier
	// Now is injectable for tests.
	Now func() time.Time
	// HourLocation picks the timezone for the hourly histogram.
	HourLocation *time.Location
}

// Aggregator assembles the stats document from independent windowed reads.
// It owns the retry and timeout policy around the store boundary; callers
// only see a complete document or a classified error.
type Aggregator struct {
	visits  stores.VisitStore
	content stores.ContentStore
	opts    Options
}

// NewAggregator builds an aggregator over the injected stores.
func NewAggregator(visits stores.VisitStore, content stores.ContentStore, opts Options) *Aggregator {
	if opts.Timeout <= 0 {
		opts.Timeout = 6 * time.Second
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 3
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = 100 * time.Millisecond
	}
	if opts.Classifier == nil {
		opts.Classifier = KeywordClassifier{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HourLocation == nil {
		opts.HourLocation = time.Local
	}
	return &Aggregator{visits: visits, content: content, opts: opts}
}

// Stats resolves the window once, fans out all reads concurrently under one
// deadline, then derives the response document. Every read retries transient
// store errors with exponential backoff before the batch as a whole fails.
func (a *Aggregator) Stats(ctx context.Context, daysParam string) (*Document, error) {
	w := ResolveWindow(a.opts.Now(), daysParam)

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	var (
		totalVisits  int64
		prevVisits   int64
		uniqueIPs    int64
		prevUnique   int64
		todayVisits  int64
		yesterday    int64
		byPage       []stores.PageCount
		times        []stores.VisitTime
		referrers    []string
		directCount  int64
		agents       []stores.AgentSample
		languages    []*string
		contentCount int64
		lastUpdated  *time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	read := func(fn func() error) {
		g.Go(func() error {
			return utils.Retry(gctx, a.opts.RetryAttempts, a.opts.RetryBase, stores.IsTransient, fn)
		})
	}

	read(func() (err error) { totalVisits, err = a.visits.CountSince(gctx, w.Since); return })
	read(func() (err error) { prevVisits, err = a.visits.CountBetween(gctx, w.PrevSince, w.Since); return })
	read(func() (err error) { uniqueIPs, err = a.visits.DistinctIPsSince(gctx, w.Since); return })
	read(func() (err error) { prevUnique, err = a.visits.DistinctIPsBetween(gctx, w.PrevSince, w.Since); return })
	read(func() (err error) { todayVisits, err = a.visits.CountSince(gctx, w.TodayStart); return })
	read(func() (err error) { yesterday, err = a.visits.CountBetween(gctx, w.YesterdayStart, w.TodayStart); return })
	read(func() (err error) { byPage, err = a.visits.CountByPage(gctx, w.Since); return })
	read(func() (err error) { times, err = a.visits.TimesSince(gctx, w.Since); return })
	read(func() (err error) { referrers, err = a.visits.ReferrersSince(gctx, w.Since); return })
	read(func() (err error) { directCount, err = a.visits.DirectCountSince(gctx, w.Since); return })
	read(func() (err error) { agents, err = a.visits.AgentsSince(gctx, w.Since); return })
	read(func() (err error) { languages, err = a.visits.LanguagesSince(gctx, w.Since); return })
	read(func() (err error) { contentCount, err = a.content.Count(gctx); return })
	read(func() (err error) { lastUpdated, err = a.content.LastUpdated(gctx); return })

	// Wait in a goroutine so a store that ignores cancellation cannot pin
	// the request past its deadline.
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	devices, browsers, screens := BuildAgentBreakdown(agents, a.opts.Classifier)

	return &Document{
		TotalVisits:         totalVisits,
		PrevTotalVisits:     prevVisits,
		UniqueVisitors:      uniqueIPs,
		PrevUniqueVisitors:  prevUnique,
		TodayVisits:         todayVisits,
		YesterdayVisits:     yesterday,
		AvgPerDay:           AveragePerDay(totalVisits, w.Days),
		VisitsTrend:         ComputeTrend(totalVisits, prevVisits),
		UniqueVisitorsTrend: ComputeTrend(uniqueIPs, prevUnique),
		ByPage:              byPage,
		Daily:               BuildDaily(times),
		Hourly:              BuildHourly(times, a.opts.HourLocation),
		Referrers:           BuildReferrers(referrers, directCount),
		Devices:             devices,
		Browsers:            browsers,
		ScreenSizes:         screens,
		Languages:           BuildLanguages(languages),
		ContentStats:        ContentSummary{TotalEntries: contentCount, LastUpdated: lastUpdated},
	}, nil
}
