package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pikacalc/internal/infra/config"
)

// errorHandlingMiddleware renders the last handler error as {"error":{"code","message"}}.
// Caller mistakes log at warn; upstream and internal failures at error.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		herr := asHTTPError(c.Errors.Last().Err)
		attrs := []any{"code", herr.Code, "status", herr.Status, "method", c.Request.Method, "path", c.Request.URL.Path, "error", herr.Err}
		level := slog.LevelWarn
		if herr.Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "pikacalc request failed", attrs...)

		body := errorBody{Code: herr.Code, Message: herr.Message}
		if body.Message == "" {
			body.Message = herr.Error()
		}
		c.JSON(herr.Status, gin.H{"error": body})
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type replayKey struct{}

// markReplay tags a request re-run by the retry wrapper.
func markReplay(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), replayKey{}, true))
}

func isReplay(r *http.Request) bool {
	replay, _ := r.Context().Value(replayKey{}).(bool)
	return replay
}

// rateLimitMiddleware meters routes that can fan out to PokeAPI, one bucket per client IP.
// Replays from the retry wrapper ride on the token of the original attempt.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	buckets := newClientBuckets(cfg)
	retryAfter := strconv.Itoa(int(buckets.refillEvery.Seconds()) + 1)
	return func(c *gin.Context) {
		if isReplay(c.Request) {
			c.Next()
			return
		}
		client := c.ClientIP()
		if buckets.take(client, time.Now()) {
			c.Next()
			return
		}
		logger.Warn("pokeapi budget exhausted", "client", client, "path", c.Request.URL.Path)
		c.Header("Retry-After", retryAfter)
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests, slow down", nil))
	}
}

// clientBuckets holds one token bucket per client. Idle buckets are dropped once
// they would be full again anyway.
type clientBuckets struct {
	mu          sync.Mutex
	byClient    map[string]*bucket
	capacity    float64
	refillEvery time.Duration
	lastSweep   time.Time
}

type bucket struct {
	tokens  float64
	updated time.Time
}

func newClientBuckets(cfg config.RateLimitConfig) *clientBuckets {
	capacity := float64(cfg.Burst)
	if capacity < 1 {
		capacity = 1
	}
	return &clientBuckets{
		byClient:    make(map[string]*bucket),
		capacity:    capacity,
		refillEvery: time.Minute / time.Duration(cfg.RequestsPerMinute),
	}
}

// take spends one token for client and reports whether one was available.
func (b *clientBuckets) take(client string, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sweepLocked(now)
	bk, ok := b.byClient[client]
	if !ok {
		bk = &bucket{tokens: b.capacity, updated: now}
		b.byClient[client] = bk
	}
	if gained := float64(now.Sub(bk.updated)) / float64(b.refillEvery); gained > 0 {
		bk.tokens = min(b.capacity, bk.tokens+gained)
		bk.updated = now
	}
	if bk.tokens < 1 {
		return false
	}
	bk.tokens--
	return true
}

func (b *clientBuckets) sweepLocked(now time.Time) {
	full := b.refillEvery * time.Duration(b.capacity)
	if now.Sub(b.lastSweep) < full {
		return
	}
	b.lastSweep = now
	for client, bk := range b.byClient {
		if now.Sub(bk.updated) >= full {
			delete(b.byClient, client)
		}
	}
}
