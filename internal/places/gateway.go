package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the provider's API root.
	DefaultBaseURL = "https://places.googleapis.com"

	// DefaultTimeout bounds a single attempt when Config.Timeout is unset.
	DefaultTimeout = 10 * time.Second

	defaultRetryBackoff = 200 * time.Millisecond

	autocompletePath = "/v1/places:autocomplete"
	textSearchPath   = "/v1/places:searchText"
	nearbyPath       = "/v1/places:searchNearby"

	autocompleteFieldMask = "suggestions.placePrediction.placeId," +
		"suggestions.placePrediction.text," +
		"suggestions.placePrediction.structuredFormat," +
		"suggestions.placePrediction.types," +
		"suggestions.placePrediction.distanceMeters"

	placesFieldMask = "places.id,places.displayName,places.formattedAddress," +
		"places.location,places.types,places.primaryType," +
		"places.rating,places.userRatingCount"
)

// Config configures a Gateway.
type Config struct {
	BaseURL string
	APIKey  string

	// Timeout bounds each attempt. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxAttempts is the total number of attempts per call. Values below 1
	// mean 1, which disables retries. Only timeouts, 429 and 5xx responses
	// are retried.
	MaxAttempts int

	// RetryBackoff is the first retry delay; later delays grow exponentially
	// with jitter.
	RetryBackoff time.Duration
}

// Gateway calls the place search provider.
// It is safe for concurrent use.
type Gateway struct {
	client *resty.Client
	cfg    Config
	logger zerolog.Logger
}

// New constructs a Gateway.
func New(cfg Config, logger zerolog.Logger) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}

	logger = logger.With().Str("component", "places").Logger()

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Goog-Api-Key", cfg.APIKey).
		SetLogger(restyLogger{logger: logger})

	return &Gateway{client: client, cfg: cfg, logger: logger}
}

// Autocomplete returns place suggestions for partially typed input.
// Input must have at least MinInputLength characters after trimming.
func (g *Gateway) Autocomplete(ctx context.Context, req AutocompleteRequest) ([]Suggestion, error) {
	if err := validateAutocomplete(req); err != nil {
		return nil, g.fail(ModeAutocomplete, "places.Gateway.Autocomplete", err)
	}

	body := autocompleteBody{
		Input:                NormalizeInput(req.Input),
		LocationBias:         areaOf(req.Bias),
		IncludedPrimaryTypes: req.Types,
		SessionToken:         req.SessionToken,
	}

	var resp autocompleteResponse
	if err := g.call(ctx, ModeAutocomplete, autocompletePath, autocompleteFieldMask, body, &resp); err != nil {
		return nil, g.fail(ModeAutocomplete, "places.Gateway.Autocomplete", err)
	}
	requestsTotal.WithLabelValues(string(ModeAutocomplete), "ok").Inc()

	out := resp.suggestions()
	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}

// TextSearch returns places matching a free-text query.
func (g *Gateway) TextSearch(ctx context.Context, req TextSearchRequest) ([]Place, error) {
	if err := validateTextSearch(req); err != nil {
		return nil, g.fail(ModeText, "places.Gateway.TextSearch", err)
	}

	body := textSearchBody{
		TextQuery:     NormalizeInput(req.Query),
		LocationBias:  areaOf(req.Bias),
		IncludedTypes: req.Types,
		PageSize:      req.Limit,
	}

	var resp placesResponse
	if err := g.call(ctx, ModeText, textSearchPath, placesFieldMask, body, &resp); err != nil {
		return nil, g.fail(ModeText, "places.Gateway.TextSearch", err)
	}
	requestsTotal.WithLabelValues(string(ModeText), "ok").Inc()

	return resp.places(), nil
}

// NearbySearch returns places of one type inside a circle.
// Rank defaults to RankPopularity.
func (g *Gateway) NearbySearch(ctx context.Context, req NearbyRequest) ([]Place, error) {
	if err := validateNearby(req); err != nil {
		return nil, g.fail(ModeNearby, "places.Gateway.NearbySearch", err)
	}

	rank := req.Rank
	if rank == "" {
		rank = RankPopularity
	}
	body := nearbyBody{
		IncludedPrimaryTypes: []string{req.Type},
		LocationRestriction: areaJSON{Circle: circleJSON{
			Center: latLngJSON{Latitude: req.Center.Latitude, Longitude: req.Center.Longitude},
			Radius: req.Radius,
		}},
		RankPreference: string(rank),
		MaxResultCount: req.Limit,
	}

	var resp placesResponse
	if err := g.call(ctx, ModeNearby, nearbyPath, placesFieldMask, body, &resp); err != nil {
		return nil, g.fail(ModeNearby, "places.Gateway.NearbySearch", err)
	}
	requestsTotal.WithLabelValues(string(ModeNearby), "ok").Inc()

	return resp.places(), nil
}

func (g *Gateway) fail(mode Mode, op string, err error) error {
	requestsTotal.WithLabelValues(string(mode), outcomeOf(err)).Inc()
	return fmt.Errorf("%s: %w", op, err)
}

// call runs post under the retry policy. With MaxAttempts 1 it is a single
// attempt.
func (g *Gateway) call(ctx context.Context, mode Mode, path, fieldMask string, body, out any) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = g.cfg.RetryBackoff
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(g.cfg.MaxAttempts-1)), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := g.post(ctx, mode, path, fieldMask, body, out)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		g.logger.Warn().
			Err(err).
			Str("mode", string(mode)).
			Int("attempt", attempt).
			Int("max_attempts", g.cfg.MaxAttempts).
			Msg("place search attempt failed")
		return err
	}, policy)
}

// post performs one bounded HTTP attempt and maps every failure to *Error,
// except cancellation by the caller which is returned as is.
func (g *Gateway) post(ctx context.Context, mode Mode, path, fieldMask string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	var apiErr errorBody
	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("X-Goog-FieldMask", fieldMask).
		SetBody(body).
		SetResult(out).
		SetError(&apiErr).
		Post(path)
	elapsed := time.Since(start)
	requestDuration.WithLabelValues(string(mode)).Observe(elapsed.Seconds())

	g.logger.Debug().
		Str("mode", string(mode)).
		Dur("elapsed", elapsed).
		Int("status", statusCode(resp)).
		Msg("place search call")

	switch {
	case err != nil && isTimeout(err):
		return timeoutError(err)
	case err != nil && errors.Is(err, context.Canceled):
		return err
	case resp != nil && resp.StatusCode() != 0 && !resp.IsSuccess():
		if apiErr.Error.Message != "" || apiErr.Error.Code != 0 {
			return upstreamError(&apiErr, resp.String())
		}
		return upstreamError(nil, resp.String())
	case err != nil:
		return &Error{Kind: ErrUpstream, Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return nil
}

func statusCode(resp *resty.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode()
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) { l.logger.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...any)  { l.logger.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...any) { l.logger.Debug().Msgf(format, v...) }
