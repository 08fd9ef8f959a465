package metrics

import "sync/atomic"

// FetchUsage summarises the upstream traffic spent on one roster load.
type FetchUsage struct {
	Requests int64 `json:"requests"`
	Resolved int64 `json:"resolved"`
	Dropped  int64 `json:"dropped"`
}

// IsZero reports whether usage data is absent.
func (u FetchUsage) IsZero() bool {
	return u.Requests == 0 && u.Resolved == 0 && u.Dropped == 0
}

// FetchCounter accumulates FetchUsage from concurrent workers.
type FetchCounter struct {
	requests atomic.Int64
	resolved atomic.Int64
	dropped  atomic.Int64
}

// Request records one species detail fetch attempt.
func (c *FetchCounter) Request() { c.requests.Add(1) }

// Resolved records a species that made it into the roster.
func (c *FetchCounter) Resolved() { c.resolved.Add(1) }

// Dropped records a species omitted after a failed fetch.
func (c *FetchCounter) Dropped() { c.dropped.Add(1) }

// Snapshot returns the totals observed so far.
func (c *FetchCounter) Snapshot() FetchUsage {
	return FetchUsage{
		Requests: c.requests.Load(),
		Resolved: c.resolved.Load(),
		Dropped:  c.dropped.Load(),
	}
}
