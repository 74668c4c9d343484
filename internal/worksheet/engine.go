package worksheet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/moolen/fmea/internal/linkage"
	"github.com/moolen/fmea/internal/logging"
	"github.com/moolen/fmea/internal/metrics"
	"github.com/moolen/fmea/internal/models"
	"github.com/moolen/fmea/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EngineConfig holds Engine configuration
type EngineConfig struct {
	Options linkage.Options

	// CacheSize is the number of analyses kept; 0 disables the cache.
	CacheSize int

	// Metrics is optional.
	Metrics *metrics.Metrics
}

// CacheStats represents cache statistics
type CacheStats struct {
	Items  int
	Hits   uint64
	Misses uint64
}

// Engine runs Analyze behind a content-addressed LRU cache. It is safe
// for concurrent use.
type Engine struct {
	opts    linkage.Options
	cache   *lru.Cache[string, *Analysis]
	metrics *metrics.Metrics
	tracer  trace.Tracer
	logger  *logging.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewEngine creates an engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("cache size must not be negative, got %d", cfg.CacheSize)
	}

	e := &Engine{
		opts:    cfg.Options,
		metrics: cfg.Metrics,
		tracer:  tracing.Tracer("worksheet"),
		logger:  logging.GetLogger("worksheet"),
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, *Analysis](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create LRU cache: %w", err)
		}
		e.cache = cache
	}
	return e, nil
}

// Recompute analyzes ws. Identical worksheet content returns the cached
// Analysis, so the result must not be modified.
func (e *Engine) Recompute(ctx context.Context, ws *models.Worksheet) *Analysis {
	ctx, span := e.tracer.Start(ctx, "worksheet.Recompute")
	defer span.End()

	var links int
	if ws != nil {
		links = len(ws.Links)
	}
	span.SetAttributes(attribute.Int("fmea.links", links))

	key := ""
	if e.cache != nil {
		key = snapshotKey(ws)
		if key != "" {
			if a, ok := e.cache.Get(key); ok {
				e.hits.Add(1)
				e.metrics.ObserveCacheHit()
				span.SetAttributes(attribute.Bool("fmea.cache_hit", true))
				return a
			}
		}
		e.misses.Add(1)
	}

	start := time.Now()
	a := Analyze(ws, e.opts)
	took := time.Since(start)

	if key != "" {
		e.cache.Add(key, a)
	}
	e.metrics.ObserveRecompute(a.Report, a.Counts, took)

	span.SetAttributes(
		attribute.Bool("fmea.cache_hit", false),
		attribute.Int("fmea.pairings", len(a.Assessments)),
		attribute.Int("fmea.unresolved", a.Report.Totals.Unresolved),
	)
	e.logSummary(ctx, a, took)
	return a
}

func (e *Engine) logSummary(ctx context.Context, a *Analysis, took time.Duration) {
	logger := e.logger.WithContext(ctx)
	risk := a.Counts[models.StageRisk]

	if !a.Report.Clean() {
		logger.WarnWithFields("worksheet has unresolved failure link references",
			logging.Field("unresolved", a.Report.Totals.Unresolved),
			logging.Field("missing_mode", a.Report.Totals.MissingMode),
			logging.Field("dangling_rows", len(a.Report.Dangling())),
		)
	}
	logger.DebugWithFields("recomputed worksheet",
		logging.Field("pairings", len(a.Assessments)),
		logging.Field("high", risk.High),
		logging.Field("medium", risk.Medium),
		logging.Field("low", risk.Low),
		logging.Field("unassessed", risk.Unassessed),
		logging.Field("took", took),
	)
}

// Stats returns cache statistics.
func (e *Engine) Stats() CacheStats {
	s := CacheStats{Hits: e.hits.Load(), Misses: e.misses.Load()}
	if e.cache != nil {
		s.Items = e.cache.Len()
	}
	return s
}

// Purge drops all cached analyses.
func (e *Engine) Purge() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

// snapshotKey hashes the canonical JSON encoding of ws. encoding/json
// sorts map keys, so equal content gives equal keys. Returns "" when the
// worksheet cannot be encoded.
func snapshotKey(ws *models.Worksheet) string {
	data, err := json.Marshal(ws)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
