package source

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/toolhub-ai/toolhub/internal/catalog"
	"github.com/toolhub-ai/toolhub/pkg/models"
)

// Fetcher retrieves the raw tool list from upstream. *Client implements it.
type Fetcher interface {
	FetchTools(ctx context.Context) ([]models.RawTool, error)
}

// Snapshots persists and restores the last raw upstream payload.
// *store.SnapshotRepository implements it.
type Snapshots interface {
	Replace(ctx context.Context, raws []models.RawTool) error
	Load(ctx context.Context) ([]models.RawTool, error)
	FetchedAt(ctx context.Context) (time.Time, error)
}

// Options configures optional Provider collaborators. Any field may be zero.
type Options struct {
	// Snapshots persists successful fetches and serves as the cold-start
	// fallback when upstream is unavailable.
	Snapshots Snapshots

	// Seed is the built-in catalog used when both upstream and the snapshot
	// store come up empty (development mode).
	Seed []models.RawTool

	// RefreshInterval is the minimum time between upstream fetches.
	// Defaults to one hour.
	RefreshInterval time.Duration

	// Registerer receives the provider's Prometheus metrics when non-nil.
	Registerer prometheus.Registerer

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Provider serves the normalized catalog snapshot to the query engine.
// Upstream is re-fetched at most once per refresh interval; every failure
// mode degrades to the best available data (previous snapshot, persisted
// snapshot, seed, empty) and never to an error.
type Provider struct {
	fetcher    Fetcher
	snapshots  Snapshots
	seed       []models.RawTool
	normalizer *catalog.Normalizer
	limiter    *rate.Limiter
	logger     *zap.Logger
	now        func() time.Time

	refreshes *prometheus.CounterVec
	size      prometheus.Gauge

	mu        sync.RWMutex
	tools     []models.Tool
	loaded    bool
	fetchedAt time.Time
}

// NewProvider creates a Provider around the given fetcher.
func NewProvider(fetcher Fetcher, logger *zap.Logger, opts Options) *Provider {
	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	p := &Provider{
		fetcher:    fetcher,
		snapshots:  opts.Snapshots,
		seed:       opts.Seed,
		normalizer: catalog.NewNormalizer(now),
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		logger:     logger,
		now:        now,
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toolhub_catalog_refresh_total",
			Help: "Catalog refresh attempts by result.",
		}, []string{"result"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "toolhub_catalog_tools",
			Help: "Number of tools in the current catalog snapshot.",
		}),
	}

	if opts.Registerer != nil {
		opts.Registerer.MustRegister(p.refreshes, p.size)
	}

	return p
}

// Tools implements catalog.Provider. The first call inside each refresh
// window triggers a synchronous upstream fetch; concurrent callers share the
// existing snapshot.
func (p *Provider) Tools(ctx context.Context) []models.Tool {
	if p.limiter.Allow() {
		p.refresh(ctx)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tools
}

// FetchedAt returns when the current snapshot was fetched from upstream,
// live or as recorded alongside a persisted snapshot. Zero when the data
// came from the seed or the empty fallback.
func (p *Provider) FetchedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fetchedAt
}

func (p *Provider) refresh(ctx context.Context) {
	raws, err := p.fetcher.FetchTools(ctx)
	if err != nil {
		p.refreshes.WithLabelValues("error").Inc()
		p.logger.Warn("catalog refresh failed", zap.Error(err))

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.loaded {
			// Keep serving the previous snapshot.
			return
		}
		p.tools, p.fetchedAt = p.coldStart(ctx)
		p.loaded = true
		p.size.Set(float64(len(p.tools)))
		return
	}

	tools := p.normalizer.NormalizeAll(raws)
	p.refreshes.WithLabelValues("ok").Inc()
	p.logger.Info("catalog refreshed", zap.Int("tools", len(tools)))

	if p.snapshots != nil {
		if err := p.snapshots.Replace(ctx, raws); err != nil {
			p.logger.Warn("persist catalog snapshot failed", zap.Error(err))
		}
	}

	p.mu.Lock()
	p.tools = tools
	p.loaded = true
	p.fetchedAt = p.now().UTC()
	p.size.Set(float64(len(tools)))
	p.mu.Unlock()
}

// coldStart resolves the fallback ladder when the very first refresh fails:
// persisted snapshot, then seed, then an empty catalog. A persisted snapshot
// carries its original fetch time; the other fallbacks have none.
func (p *Provider) coldStart(ctx context.Context) ([]models.Tool, time.Time) {
	if p.snapshots != nil {
		raws, err := p.snapshots.Load(ctx)
		if err != nil {
			p.logger.Warn("load catalog snapshot failed", zap.Error(err))
		} else if len(raws) > 0 {
			fetchedAt, err := p.snapshots.FetchedAt(ctx)
			if err != nil {
				p.logger.Warn("read snapshot fetch time failed", zap.Error(err))
			}
			p.logger.Info("serving persisted catalog snapshot",
				zap.Int("tools", len(raws)), zap.Time("fetched_at", fetchedAt))
			return p.normalizer.NormalizeAll(raws), fetchedAt
		}
	}

	if len(p.seed) > 0 {
		p.logger.Info("serving embedded seed catalog", zap.Int("tools", len(p.seed)))
		return p.normalizer.NormalizeAll(p.seed), time.Time{}
	}

	return []models.Tool{}, time.Time{}
}
