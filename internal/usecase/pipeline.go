package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Saarathi-n/eshopzz/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// Phase is the retrieval lifecycle state of the pipeline.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// PipelineConfig holds configuration for the pipeline
type PipelineConfig struct {
	CacheTTL time.Duration
}

// pipelineState is the mutable state owned exclusively by the Pipeline.
// The displayed list is never stored here; it is derived on every read
// from rawProducts, filters and sort, so it cannot go stale.
type pipelineState struct {
	query          string
	rawProducts    []domain.ProductRecord
	filters        domain.FilterSpec
	sort           domain.SortMode
	phase          Phase
	errMessage     string
	isFallbackData bool
}

// View is an immutable snapshot of the pipeline handed to callers. The
// Displayed list is rank(filter(rawProducts)) computed at snapshot time.
type View struct {
	Query      string                 `json:"query"`
	Phase      Phase                  `json:"phase"`
	Error      string                 `json:"error,omitempty"`
	IsFallback bool                   `json:"is_fallback"`
	Total      int                    `json:"total"`
	Displayed  []domain.ProductRecord `json:"products"`
}

// Pipeline orchestrates the retrieval-and-ranking flow for one search
// session: it owns the current query, raw products, filters and sort mode,
// and recomputes the displayed list whenever any of them change.
// Flow per query: check cache -> gateway (live, then fallback) -> cache -> view
type Pipeline struct {
	gateway  domain.SearchGateway
	cache    domain.CacheRepository
	cacheTTL time.Duration

	// mutex guards state and generation; only Pipeline methods mutate them.
	// The gateway call happens outside the lock so filter and sort changes
	// stay responsive while a search is in flight.
	mutex      sync.Mutex
	state      pipelineState
	generation uint64
}

// NewPipeline creates a pipeline with empty products and default
// filters/sort. cache may be nil to disable result caching.
func NewPipeline(gateway domain.SearchGateway, cache domain.CacheRepository, config PipelineConfig) *Pipeline {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	return &Pipeline{
		gateway:  gateway,
		cache:    cache,
		cacheTTL: cacheTTL,
		state: pipelineState{
			filters: domain.DefaultFilters(),
			sort:    domain.SortRelevance,
			phase:   PhaseIdle,
		},
	}
}

// Search submits a query: the pipeline transitions to loading, resolves the
// query through the cache or the gateway, and applies the outcome. When a
// newer query was submitted while this one was in flight, the stale outcome
// is discarded and the current view is returned unchanged. A terminal
// retrieval failure clears the product list, sets the error message, and is
// returned alongside the view.
func (p *Pipeline) Search(ctx context.Context, query string) (View, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return p.Snapshot(), domain.ErrEmptyQuery
	}

	generation := p.beginSearch(query)

	cacheKey := generateCacheKey(query)
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			log.Printf("[PIPELINE] Cache hit for %q (%d products)", query, len(cached.Products))
			return p.applySuccess(generation, cached), nil
		}
	}

	result, err := p.gateway.Search(ctx, query)
	if err != nil {
		return p.applyFailure(generation, err)
	}

	// Demo data is a degraded answer for the query; never cache it.
	if p.cache != nil && !result.IsFallback {
		if cacheErr := p.cache.Set(ctx, cacheKey, result, p.cacheTTL); cacheErr != nil {
			log.Printf("[PIPELINE] Failed to cache results for %q: %v", query, cacheErr)
		}
	}

	return p.applySuccess(generation, result), nil
}

// SetFilters replaces the filter specification. No retrieval is triggered;
// the displayed list is simply recomputed.
func (p *Pipeline) SetFilters(spec domain.FilterSpec) View {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.state.filters = spec
	return p.viewLocked()
}

// SetSortMode replaces the sort mode. No retrieval is triggered.
func (p *Pipeline) SetSortMode(mode domain.SortMode) View {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.state.sort = mode
	return p.viewLocked()
}

// Snapshot returns the current view without side effects.
func (p *Pipeline) Snapshot() View {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.viewLocked()
}

// Filters returns the active filter specification.
func (p *Pipeline) Filters() domain.FilterSpec {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.state.filters
}

// beginSearch records the query, enters the loading phase, and returns the
// generation this search was issued under.
func (p *Pipeline) beginSearch(query string) uint64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.generation++
	p.state.query = query
	p.state.phase = PhaseLoading
	p.state.errMessage = ""
	return p.generation
}

// applySuccess stores the resolved products unless a newer search has been
// issued since, in which case the resolution is discarded.
func (p *Pipeline) applySuccess(generation uint64, result *domain.SearchResult) View {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if generation != p.generation {
		log.Printf("[PIPELINE] Discarding stale result for generation %d (current %d)", generation, p.generation)
		return p.viewLocked()
	}

	p.state.rawProducts = append([]domain.ProductRecord(nil), result.Products...)
	p.state.isFallbackData = result.IsFallback
	p.state.phase = PhaseSuccess
	p.state.errMessage = ""
	return p.viewLocked()
}

// applyFailure records a terminal retrieval failure: prior products are
// cleared so stale, unrelated-query data is never shown under an error.
func (p *Pipeline) applyFailure(generation uint64, err error) (View, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if generation != p.generation {
		log.Printf("[PIPELINE] Discarding stale failure for generation %d (current %d)", generation, p.generation)
		return p.viewLocked(), nil
	}

	p.state.rawProducts = nil
	p.state.isFallbackData = false
	p.state.phase = PhaseError
	p.state.errMessage = err.Error()
	return p.viewLocked(), err
}

// viewLocked derives the displayed list from the current inputs. Callers
// must hold the mutex.
func (p *Pipeline) viewLocked() View {
	displayed := Rank(Filter(p.state.rawProducts, p.state.filters), p.state.sort)

	return View{
		Query:      p.state.query,
		Phase:      p.state.phase,
		Error:      p.state.errMessage,
		IsFallback: p.state.isFallbackData,
		Total:      len(p.state.rawProducts),
		Displayed:  displayed,
	}
}

// generateCacheKey creates a normalized cache key for a query.
// Format: "search:{normalized_query}"
func generateCacheKey(query string) string {
	normalized := strings.ToLower(query)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("search:%s", strings.TrimSpace(normalized))
}
