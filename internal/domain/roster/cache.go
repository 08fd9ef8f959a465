package roster

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yanqian/pikacalc/pkg/util"
)

// cacheGuard is the single writer for the roster cache key. Reads and writes never fail:
// I/O errors, corruption and version mismatches all degrade to "no cache".
type cacheGuard struct {
	mu        sync.Mutex
	store     Store
	key       string
	version   string
	lastStamp int64
	now       func() time.Time
	logger    *slog.Logger
}

func newCacheGuard(store Store, key, version string, logger *slog.Logger) *cacheGuard {
	return &cacheGuard{
		store:   store,
		key:     key,
		version: version,
		now:     util.NowUTC,
		logger:  logger,
	}
}

func (g *cacheGuard) read(ctx context.Context) []Species {
	env, ok := g.load(ctx)
	if !ok {
		return nil
	}
	return env.Pokemon
}

func (g *cacheGuard) load(ctx context.Context) (envelope, bool) {
	payload, found, err := g.store.Get(ctx, g.key)
	if err != nil {
		g.logger.Warn("cache read failed", "key", g.key, "error", err)
		return envelope{}, false
	}
	if !found || len(payload) == 0 {
		return envelope{}, false
	}
	env, err := decodeEnvelope(payload)
	if err != nil {
		g.logger.Warn("discarding unreadable cache", "key", g.key, "error", err)
		return envelope{}, false
	}
	if env.Version != g.version {
		g.logger.Debug("discarding cache with stale version", "key", g.key, "version", env.Version, "want", g.version)
		return envelope{}, false
	}
	return env, true
}

// write persists list unless the stored valid roster is longer. It reports whether a write happened.
func (g *cacheGuard) write(ctx context.Context, list []Species) bool {
	if len(list) == 0 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if current, ok := g.load(ctx); ok {
		if len(current.Pokemon) > len(list) {
			g.logger.Debug("keeping longer cached roster", "cached", len(current.Pokemon), "candidate", len(list))
			return false
		}
		if current.Timestamp > g.lastStamp {
			g.lastStamp = current.Timestamp
		}
	}

	stamp := util.UnixMillis(g.now())
	if stamp <= g.lastStamp {
		stamp = g.lastStamp + 1
	}

	payload, err := encodeEnvelope(g.version, stamp, list)
	if err != nil {
		g.logger.Warn("cache encode failed", "key", g.key, "error", err)
		return false
	}
	if err := g.store.Put(ctx, g.key, payload); err != nil {
		g.logger.Warn("cache write failed", "key", g.key, "error", err)
		return false
	}
	g.lastStamp = stamp
	return true
}
