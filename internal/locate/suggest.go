package locate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"mosque/pkg/location"
)

// Autocomplete tuning.
const (
	MinSuggestLength = 2
	SuggestLimit     = 8
	DefaultDebounce  = 250 * time.Millisecond
)

// Suggestion is one autocomplete entry.
type Suggestion struct {
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
	Glyph       string  `json:"glyph"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

var glyphs = map[string]string{
	"city":          "🏙️",
	"town":          "🏘️",
	"village":       "🏡",
	"suburb":        "🏘️",
	"neighbourhood": "🏠",
	"road":          "🛣️",
	"building":      "🏢",
	"hospital":      "🏥",
	"school":        "🏫",
	"university":    "🎓",
	"mosque":        "🕌",
	"restaurant":    "🍽️",
	"cafe":          "☕",
	"shop":          "🛍️",
	"market":        "🏪",
	"park":          "🌳",
	"stadium":       "🏟️",
}

const defaultGlyph = "📍"

// Glyph returns the icon shown next to a suggestion of the given place type.
func Glyph(placeType string) string {
	if g, ok := glyphs[placeType]; ok {
		return g
	}
	return defaultGlyph
}

// Suggester debounces autocomplete queries per client. A query is only sent
// to the geocoder once the same client issued no newer query during the quiet
// period, and a response is dropped if that client issued a newer query while
// it was in flight. Queries from different clients never cancel each other.
type Suggester struct {
	geocoder Geocoder
	delay    time.Duration
	counter  atomic.Uint64

	mu     sync.Mutex
	latest map[string]uint64
}

// NewSuggester returns a suggester waiting delay before each lookup, or
// DefaultDebounce when delay is not positive.
func NewSuggester(geocoder Geocoder, delay time.Duration) *Suggester {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Suggester{geocoder: geocoder, delay: delay, latest: map[string]uint64{}}
}

// Query returns up to SuggestLimit suggestions for query on behalf of client.
// Queries shorter than MinSuggestLength return no suggestions without a
// request. A call overtaken by a newer one from the same client returns
// ErrSuperseded.
func (s *Suggester) Query(ctx context.Context, client, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	seq := s.begin(client)
	defer s.done(client, seq)
	if utf8.RuneCountInString(query) < MinSuggestLength {
		return []Suggestion{}, nil
	}

	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.C:
	}
	if !s.current(client, seq) {
		return nil, ErrSuperseded
	}

	places, err := s.geocoder.Search(ctx, query, SuggestLimit)
	if !s.current(client, seq) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return suggestions(places), nil
}

func (s *Suggester) begin(client string) uint64 {
	seq := s.counter.Add(1)
	s.mu.Lock()
	s.latest[client] = seq
	s.mu.Unlock()
	return seq
}

func (s *Suggester) current(client string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[client] == seq
}

// done forgets client once its latest query finished.
func (s *Suggester) done(client string, seq uint64) {
	s.mu.Lock()
	if s.latest[client] == seq {
		delete(s.latest, client)
	}
	s.mu.Unlock()
}

func suggestions(places []location.Place) []Suggestion {
	out := make([]Suggestion, 0, len(places))
	for _, p := range places {
		out = append(out, Suggestion{
			DisplayName: p.DisplayName,
			Type:        p.Type,
			Glyph:       Glyph(p.Type),
			Lat:         p.Lat,
			Lng:         p.Lng,
		})
	}
	return out
}
