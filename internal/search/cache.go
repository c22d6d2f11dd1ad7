// Package search drives an interactive place search: keystrokes are
// debounced, repeated queries are suppressed, and results of superseded
// requests are discarded.
package search

import (
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
)

// Query identifies a search request for suppression purposes.
type Query struct {
	Input      string
	Categories []string
}

// QueryCache remembers the last dispatched query. It holds a single entry;
// recording a query replaces whatever was there.
//
// Each Session owns one QueryCache. It is safe for concurrent use.
type QueryCache struct {
	mu  sync.Mutex
	now func() time.Time

	key string
	at  time.Time
	set bool
}

// NewQueryCache returns an empty cache. A nil clock means time.Now.
func NewQueryCache(now func() time.Time) *QueryCache {
	if now == nil {
		now = time.Now
	}
	return &QueryCache{now: now}
}

// Key returns the canonical form of q: the trimmed, case-folded input and
// the lexically sorted categories.
func (c *QueryCache) Key(q Query) string {
	return canonicalKey(q)
}

// ShouldDispatch reports whether q differs from the last recorded query.
func (c *QueryCache) ShouldDispatch(q Query) bool {
	key := canonicalKey(q)

	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.set || c.key != key
}

// RecordDispatched stores q as the last dispatched query.
func (c *QueryCache) RecordDispatched(q Query) {
	key := canonicalKey(q)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.key, c.at, c.set = key, c.now(), true
}

// Admit is ShouldDispatch followed by RecordDispatched as one step.
// It returns false, and records nothing, when q matches the last entry.
func (c *QueryCache) Admit(q Query) bool {
	key := canonicalKey(q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set && c.key == key {
		return false
	}
	c.key, c.at, c.set = key, c.now(), true
	return true
}

// Last returns the key of the last recorded query and when it was recorded.
func (c *QueryCache) Last() (string, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key, c.at, c.set
}

// Reset forgets the last recorded query, so the next query always dispatches.
func (c *QueryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key, c.at, c.set = "", time.Time{}, false
}

var fold = cases.Fold()

func canonicalKey(q Query) string {
	cats := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, fold.String(c))
		}
	}
	slices.Sort(cats)

	return fold.String(strings.TrimSpace(q.Input)) + "\x1f" + strings.Join(cats, ",")
}
