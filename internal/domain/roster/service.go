package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/yanqian/pikacalc/pkg/errors"
	"github.com/yanqian/pikacalc/pkg/metrics"
)

// Service produces the species roster, trading first-page latency against completeness.
type Service interface {
	// Initial returns the first limit species, from cache when a valid one exists.
	Initial(ctx context.Context, limit int) ([]Species, error)
	// Remaining completes the roster from offset currentCount, calling onProgress once per batch.
	Remaining(ctx context.Context, currentCount int, onProgress func([]Species)) ([]Species, error)
	// StreamRemaining is Remaining as a stream of snapshots. The channel is unbuffered and
	// closes when the load completes or ctx is done.
	StreamRemaining(ctx context.Context, currentCount int) (<-chan Snapshot, error)
	// Lookup resolves one species by display name, slug or id.
	Lookup(ctx context.Context, nameOrID string) (Species, error)
	// Cached returns the valid cache contents, empty on a miss.
	Cached(ctx context.Context) []Species
}

type service struct {
	cfg    Config
	source Source
	cache  *cacheGuard
	logger *slog.Logger

	mu       sync.RWMutex
	resident []Species
}

// NewService wires up the roster domain.
func NewService(cfg Config, source Source, store Store, logger *slog.Logger) Service {
	if cfg.CacheKey == "" {
		cfg.CacheKey = DefaultCacheKey
	}
	if cfg.InitialLimit <= 0 {
		cfg.InitialLimit = DefaultInitialLimit
	}
	logger = logger.With("component", "roster.service")
	return &service{
		cfg:    cfg,
		source: source,
		cache:  newCacheGuard(store, cfg.CacheKey, CacheSchemaVersion, logger),
		logger: logger,
	}
}

func (s *service) Initial(ctx context.Context, limit int) ([]Species, error) {
	if limit <= 0 {
		limit = s.cfg.InitialLimit
	}
	limit = min(limit, UniverseSize)

	if cached := s.cache.read(ctx); len(cached) > 0 {
		list := cloneSpecies(cached[:min(limit, len(cached))])
		s.setResident(list)
		return list, nil
	}

	page, err := s.source.ListSpecies(ctx, limit, 0)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeListingError, "failed to load pokemon listing", err)
	}

	var counter metrics.FetchCounter
	list := make([]Species, 0, len(page.Results))
	for start := 0; start < len(page.Results); start += BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+BatchSize, len(page.Results))
		list = appendUnique(list, s.resolveBatch(ctx, page.Results[start:end], &counter))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.setResident(list)
	s.cache.write(ctx, list)
	usage := counter.Snapshot()
	s.logger.Info("initial roster loaded", "count", len(list), "requests", usage.Requests, "dropped", usage.Dropped)
	return cloneSpecies(list), nil
}

func (s *service) Remaining(ctx context.Context, currentCount int, onProgress func([]Species)) ([]Species, error) {
	plan, err := s.plan(ctx, currentCount)
	if err != nil {
		return nil, err
	}
	if plan.cached {
		return plan.seed, nil
	}
	return s.run(ctx, plan, func(snap Snapshot) bool {
		if onProgress != nil {
			onProgress(snap.Species)
		}
		return true
	})
}

func (s *service) StreamRemaining(ctx context.Context, currentCount int) (<-chan Snapshot, error) {
	plan, err := s.plan(ctx, currentCount)
	if err != nil {
		return nil, err
	}

	out := make(chan Snapshot)
	send := func(snap Snapshot) bool {
		select {
		case out <- snap:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(out)
		if plan.cached {
			send(Snapshot{Species: plan.seed, Cached: true})
			return
		}
		list, err := s.run(ctx, plan, send)
		if err != nil {
			s.logger.Info("roster stream stopped", "error", err)
			return
		}
		if len(plan.refs) == 0 {
			send(Snapshot{Species: list})
		}
	}()
	return out, nil
}

func (s *service) Lookup(ctx context.Context, nameOrID string) (Species, error) {
	ref := strings.TrimSpace(nameOrID)
	if ref == "" {
		return Species{}, apperrors.Wrap(apperrors.CodeInvalidInput, "pokemon reference cannot be empty", nil)
	}
	if sp, ok := findSpecies(s.residentList(), ref); ok {
		return sp, nil
	}
	if sp, ok := findSpecies(s.cache.read(ctx), ref); ok {
		return sp, nil
	}

	sp, err := s.source.LookupSpecies(ctx, slugOf(ref))
	if err != nil {
		if errors.Is(err, ErrSpeciesNotFound) {
			return Species{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("pokemon %q not found", ref), err)
		}
		return Species{}, apperrors.Wrap(apperrors.CodeUpstreamError, "failed to fetch pokemon", err)
	}
	return sp, nil
}

func (s *service) Cached(ctx context.Context) []Species {
	return cloneSpecies(s.cache.read(ctx))
}

type loadPlan struct {
	seed   []Species
	refs   []SpeciesRef
	cached bool
}

// plan decides between a cache hit and a remote load, fetching the listing for the latter.
func (s *service) plan(ctx context.Context, currentCount int) (loadPlan, error) {
	currentCount = max(currentCount, 0)

	cached := s.cache.read(ctx)
	if len(cached) > currentCount {
		return loadPlan{seed: cloneSpecies(cached), cached: true}, nil
	}

	seed := cached
	if len(seed) == 0 {
		seed = s.residentList()
	}
	seed = cloneSpecies(seed[:min(len(seed), currentCount)])

	// The listing resumes where the seed ends, so a caller claiming more species than
	// this process holds still gets a roster that starts at the first entry.
	offset := len(seed)
	if offset < currentCount {
		s.logger.Debug("seed shorter than caller count", "seed", offset, "current", currentCount)
	}
	limit := UniverseSize - offset
	if limit <= 0 {
		return loadPlan{seed: seed}, nil
	}
	page, err := s.source.ListSpecies(ctx, limit, offset)
	if err != nil {
		return loadPlan{}, apperrors.Wrap(apperrors.CodeListingError, "failed to load pokemon listing", err)
	}
	return loadPlan{seed: seed, refs: page.Results}, nil
}

// run resolves plan.refs batch by batch. Batches are strictly sequential; emit is called
// after each one and a false return stops the load. Only a completed load is persisted.
func (s *service) run(ctx context.Context, plan loadPlan, emit func(Snapshot) bool) ([]Species, error) {
	var counter metrics.FetchCounter
	acc := plan.seed
	batches := (len(plan.refs) + BatchSize - 1) / BatchSize

	for i := 0; i < batches; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := i * BatchSize
		end := min(start+BatchSize, len(plan.refs))
		acc = appendUnique(acc, s.resolveBatch(ctx, plan.refs[start:end], &counter))

		s.logger.Debug("roster batch resolved", "batch", i+1, "batches", batches, "count", len(acc))
		snap := Snapshot{Species: cloneSpecies(acc), Batch: i + 1, Batches: batches, Usage: counter.Snapshot()}
		if !emit(snap) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, context.Canceled
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.setResident(acc)
	s.cache.write(ctx, acc)
	usage := counter.Snapshot()
	s.logger.Info("roster load completed", "count", len(acc), "requests", usage.Requests, "dropped", usage.Dropped)
	return cloneSpecies(acc), nil
}

// resolveBatch fetches every ref concurrently. A failed ref is logged and dropped; the
// result keeps listing order.
func (s *service) resolveBatch(ctx context.Context, refs []SpeciesRef, counter *metrics.FetchCounter) []Species {
	results := make([]*Species, len(refs))

	var g errgroup.Group
	g.SetLimit(BatchSize)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			counter.Request()
			sp, err := s.source.FetchSpecies(ctx, ref)
			if err == nil {
				err = sp.Validate()
			}
			if err != nil {
				counter.Dropped()
				s.logger.Warn("dropping species", "name", ref.Name, "url", ref.URL, "error", err)
				return nil
			}
			counter.Resolved()
			results[i] = &sp
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Species, 0, len(refs))
	for _, sp := range results {
		if sp != nil {
			out = append(out, *sp)
		}
	}
	return out
}

func (s *service) setResident(list []Species) {
	s.mu.Lock()
	s.resident = cloneSpecies(list)
	s.mu.Unlock()
}

func (s *service) residentList() []Species {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSpecies(s.resident)
}

func appendUnique(acc, batch []Species) []Species {
	seen := make(map[int]struct{}, len(acc))
	for _, sp := range acc {
		seen[sp.ID] = struct{}{}
	}
	for _, sp := range batch {
		if _, dup := seen[sp.ID]; dup {
			continue
		}
		seen[sp.ID] = struct{}{}
		acc = append(acc, sp)
	}
	return acc
}

func cloneSpecies(list []Species) []Species {
	out := make([]Species, len(list))
	for i, sp := range list {
		out[i] = sp.clone()
	}
	return out
}

func (s Species) clone() Species {
	if s.Types != nil {
		s.Types = append(s.Types[:0:0], s.Types...)
	}
	if s.Abilities != nil {
		s.Abilities = append(s.Abilities[:0:0], s.Abilities...)
	}
	return s
}
