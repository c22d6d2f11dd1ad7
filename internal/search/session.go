package search

import (
	"context"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pkordes/waypoint/internal/places"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Searcher is the subset of the place gateway a Session needs.
type Searcher interface {
	Autocomplete(ctx context.Context, req places.AutocompleteRequest) ([]places.Suggestion, error)
	TextSearch(ctx context.Context, req places.TextSearchRequest) ([]places.Place, error)
}

var _ Searcher = (*places.Gateway)(nil)

// Snapshot is the observable state of a Session.
type Snapshot struct {
	Input   string
	Results []places.Suggestion
	Loading bool
	Err     error
}

// Option configures a Session in NewSession.
type Option func(*Session)

// WithMode selects autocomplete (the default) or text search.
// Nearby search has no text input and is not driven by a Session.
func WithMode(m places.Mode) Option {
	return func(s *Session) {
		if m == places.ModeText {
			s.mode = m
		}
	}
}

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithMinInput sets the number of characters, after trimming, below which
// input clears the results instead of searching.
func WithMinInput(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.minInput = n
		}
	}
}

// WithBias prefers results inside c.
func WithBias(c *places.Circle) Option {
	return func(s *Session) { s.bias = c }
}

// WithTypes restricts results to the given place types.
func WithTypes(types ...string) Option {
	return func(s *Session) { s.types = slices.Clone(types) }
}

// WithLimit caps the number of results.
func WithLimit(n int) Option {
	return func(s *Session) { s.limit = n }
}

// WithLogger sets the session's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithOnUpdate registers fn to receive a Snapshot after every state change.
// fn runs on the goroutine that made the change, outside the session's lock.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(s *Session) { s.onUpdate = fn }
}

// WithClock sets the clock used to timestamp cache entries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is one interactive search: the host feeds it every input change
// and reads back results. At most one query is current at a time and
// results for a superseded query are discarded.
//
// A Session is safe for concurrent use. Close it when the consumer goes away.
type Session struct {
	gw     Searcher
	ctx    context.Context
	cancel context.CancelFunc

	mode     places.Mode
	delay    time.Duration
	minInput int
	bias     *places.Circle
	types    []string
	limit    int
	logger   zerolog.Logger
	onUpdate func(Snapshot)
	now      func() time.Time

	cache     *QueryCache
	debouncer *Debouncer

	mu      sync.Mutex
	gen     uint64
	token   string
	input   string
	results []places.Suggestion
	loading bool
	err     error
	closed  bool
}

// NewSession returns an idle Session searching through gw.
// Calls made by the session are cancelled when ctx is done or on Close.
func NewSession(ctx context.Context, gw Searcher, opts ...Option) *Session {
	s := &Session{
		gw:       gw,
		mode:     places.ModeAutocomplete,
		delay:    DefaultDebounce,
		minInput: places.MinInputLength,
		logger:   zerolog.Nop(),
		token:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.logger = s.logger.With().Str("component", "search").Str("mode", string(s.mode)).Logger()
	s.cache = NewQueryCache(s.now)
	s.debouncer = NewDebouncer(s.delay, s.dispatch)
	return s
}

// SetInput records the latest input. Input long enough to search arms the
// debounce timer; shorter input clears the results and searches nothing.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.input = text

	if utf8.RuneCountInString(places.NormalizeInput(text)) >= s.minInput {
		s.mu.Unlock()
		s.debouncer.Start(text)
		return
	}

	s.debouncer.Cancel()
	s.cache.Reset()
	s.gen++
	s.results, s.err, s.loading = nil, nil, false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// Results returns the results of the current query.
func (s *Session) Results() []places.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

// Loading reports whether the current query is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error of the current query, if it failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Snapshot returns the whole observable state at once.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Token returns the provider session token sent with autocomplete calls.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// EndSession closes the provider-side session, typically after the user has
// picked a result. Pending input is dropped and the next query starts a new
// session token. Results are kept.
func (s *Session) EndSession() {
	s.debouncer.Cancel()
	s.cache.Reset()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = uuid.NewString()
}

// Close stops the session. A pending query is dropped, an in-flight call is
// cancelled and later input is ignored. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.gen++
	s.mu.Unlock()

	s.debouncer.Dispose()
	s.cancel()
}

// dispatch runs when the debounce timer fires.
func (s *Session) dispatch(input string) {
	s.mu.Lock()
	cleared := s.closed || utf8.RuneCountInString(places.NormalizeInput(s.input)) < s.minInput
	s.mu.Unlock()
	if cleared {
		return
	}

	q := Query{Input: input, Categories: s.types}
	if !s.cache.Admit(q) {
		suppressedTotal.Inc()
		s.logger.Trace().Str("input", input).Msg("query unchanged, not dispatched")
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	token := s.token
	s.loading, s.err = true, nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	dispatchedTotal.WithLabelValues(string(s.mode)).Inc()
	s.logger.Debug().Str("input", input).Uint64("generation", gen).Msg("dispatching query")

	results, err := s.search(input, token)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		staleTotal.Inc()
		s.logger.Debug().Str("input", input).Uint64("generation", gen).Msg("discarding stale results")
		return
	}
	s.loading = false
	if err != nil {
		s.results, s.err = nil, err
		// Let the same input be retried.
		s.cache.Reset()
	} else {
		s.results, s.err = results, nil
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn().Err(err).Str("input", input).Msg("search failed")
	}
	s.notify(snap)
}

func (s *Session) search(input, token string) ([]places.Suggestion, error) {
	if s.mode == places.ModeText {
		found, err := s.gw.TextSearch(s.ctx, places.TextSearchRequest{
			Query: input,
			Bias:  s.bias,
			Types: s.types,
			Limit: s.limit,
		})
		if err != nil {
			return nil, err
		}
		out := make([]places.Suggestion, len(found))
		for i, p := range found {
			out[i] = p.Suggestion()
		}
		return out, nil
	}

	return s.gw.Autocomplete(s.ctx, places.AutocompleteRequest{
		Input:        input,
		Bias:         s.bias,
		Types:        s.types,
		SessionToken: token,
		Limit:        s.limit,
	})
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Input:   s.input,
		Results: slices.Clone(s.results),
		Loading: s.loading,
		Err:     s.err,
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.onUpdate != nil {
		s.onUpdate(snap)
	}
}
