package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/places"
	"github.com/pkordes/waypoint/internal/search"
)

type searchFlags struct {
	mode     string
	category string
	lat, lng float64
	radius   float64
	limit    int
	debounce time.Duration
	pace     time.Duration
}

func newSearchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search places as you type",
		Long: `Reads stdin one line at a time and treats each line as the next state of a
search box. Lines arriving within the debounce period collapse into one
search; repeated queries are not sent again. Results are printed as they
arrive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.mode, "mode", string(places.ModeAutocomplete), "autocomplete or text")
	cmd.Flags().StringVar(&f.category, "category", "", "restrict results to the place types of an activity category")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude of the bias circle")
	cmd.Flags().Float64Var(&f.lng, "lng", 0, "longitude of the bias circle")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "radius of the bias circle in meters (0: no bias)")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum results per search (0: provider default)")
	cmd.Flags().DurationVar(&f.debounce, "debounce", 0, "quiet period before searching (default SEARCH_DEBOUNCE)")
	cmd.Flags().DurationVar(&f.pace, "pace", 0, "delay between input lines, to replay typing")
	return cmd
}

func runSearch(cmd *cobra.Command, f searchFlags) error {
	mode := places.Mode(f.mode)
	if mode != places.ModeAutocomplete && mode != places.ModeText {
		return fmt.Errorf("unknown --mode %q", f.mode)
	}

	cfg, log, err := loadClient(cmd)
	if err != nil {
		return err
	}
	if f.debounce <= 0 {
		f.debounce = cfg.SearchDebounce
	}

	gw := places.New(places.Config{
		BaseURL:     cfg.PlacesBaseURL,
		APIKey:      cfg.PlacesAPIKey,
		Timeout:     cfg.PlacesTimeout,
		MaxAttempts: cfg.PlacesMaxAttempts,
	}, log)

	opts := []search.Option{
		search.WithMode(mode),
		search.WithDebounce(f.debounce),
		search.WithMinInput(cfg.SearchMinInput),
		search.WithLimit(f.limit),
		search.WithLogger(log),
	}
	if f.category != "" {
		c, err := domain.ParseCategory(f.category)
		if err != nil {
			return err
		}
		opts = append(opts, search.WithTypes(places.TypesForCategory(c)...))
	}
	if f.radius > 0 {
		opts = append(opts, search.WithBias(&places.Circle{
			Center: &places.LatLng{Latitude: f.lat, Longitude: f.lng},
			Radius: f.radius,
		}))
	}

	p := &printer{w: cmd.OutOrStdout(), minInput: cfg.SearchMinInput}
	opts = append(opts, search.WithOnUpdate(p.print))

	s := search.NewSession(cmd.Context(), gw, opts...)
	defer s.Close()

	if err := feed(cmd.Context(), s, cmd.InOrStdin(), f.pace); err != nil {
		return err
	}

	wait := f.debounce + cfg.PlacesTimeout*time.Duration(cfg.PlacesMaxAttempts) + time.Second
	return settle(cmd.Context(), func() bool { return s.Loading() || p.busy() }, f.debounce, wait)
}

// feed sends every line of r to the session as the next input.
func feed(ctx context.Context, s *search.Session, r io.Reader, pace time.Duration) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.SetInput(sc.Text())
		if pace > 0 {
			select {
			case <-time.After(pace):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return sc.Err()
}

// settle waits for the last debounce period to pass and then until busy
// reports false.
func settle(ctx context.Context, busy func() bool, debounce, wait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	// The timer fires dispatch on its own goroutine; leave it a moment to
	// mark the session loading.
	select {
	case <-time.After(debounce + 50*time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}

	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for busy() {
		select {
		case <-tick.C:
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return errors.New("search did not finish in time")
			}
			return ctx.Err()
		}
	}
	return nil
}

// printer writes settled snapshots. Updates arrive from timer goroutines.
// Input too short to search only clears the results and is not printed.
type printer struct {
	mu       sync.Mutex
	w        io.Writer
	minInput int
	loading  bool
}

// busy reports whether the last snapshot seen was still loading, so a
// finished search counts only once its results are printed.
func (p *printer) busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *printer) print(snap search.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loading = snap.Loading
	if snap.Loading || utf8.RuneCountInString(places.NormalizeInput(snap.Input)) < p.minInput {
		return
	}

	switch {
	case snap.Err != nil:
		fmt.Fprintf(p.w, "%q: error: %v\n", snap.Input, snap.Err)
	case len(snap.Results) == 0:
		fmt.Fprintf(p.w, "%q: no results\n", snap.Input)
	default:
		fmt.Fprintf(p.w, "%q: %d results\n", snap.Input, len(snap.Results))
		for _, r := range snap.Results {
			fmt.Fprintf(p.w, "  %s\t%s\n", r.PlaceID, r.Text)
		}
	}
}
