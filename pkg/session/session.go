package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-sitesurvey/pkg/answers"
	"github.com/goliatone/go-sitesurvey/pkg/location"
	"github.com/goliatone/go-sitesurvey/pkg/report"
	"github.com/goliatone/go-sitesurvey/pkg/resolve"
	"github.com/goliatone/go-sitesurvey/pkg/schema"
)

// Default coordinates for a fresh session: Seoul City Hall.
const (
	DefaultLat = 37.566826
	DefaultLng = 126.9786567
)

// ErrStaleSelection reports that a point selection finished after a newer
// selection had already been issued; its result was discarded.
var ErrStaleSelection = errors.New("session: selection superseded")

// LocationResolver resolves the merged location record for a point. Satisfied
// by *location.Aggregator.
type LocationResolver interface {
	Resolve(ctx context.Context, lat, lng float64) (location.Data, error)
}

// Session holds the full state of one survey: the schema, the mode, the
// answer store, the selected location, and a status line. All methods are
// safe for concurrent use. Point selections follow last-selection-wins:
// whichever SelectPoint call was issued last owns the committed location,
// regardless of completion order.
type Session struct {
	mu         sync.Mutex
	cfg        *schema.Config
	mode       schema.Mode
	store      *answers.Store
	resolver   *resolve.Resolver
	generator  *report.Generator
	locations  LocationResolver
	loc        *location.Data
	generation uint64
	status     string

	defaultLat float64
	defaultLng float64
}

// Option configures a Session.
type Option func(*Session)

// WithSchema replaces the built-in field schema.
func WithSchema(cfg *schema.Config) Option {
	return func(s *Session) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithMode sets the initial survey mode.
func WithMode(mode schema.Mode) Option {
	return func(s *Session) { s.mode = mode }
}

// WithResolver replaces the instance resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(s *Session) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithGenerator replaces the report generator.
func WithGenerator(g *report.Generator) Option {
	return func(s *Session) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithDefaultPoint overrides the coordinates Start selects.
func WithDefaultPoint(lat, lng float64) Option {
	return func(s *Session) {
		s.defaultLat = lat
		s.defaultLng = lng
	}
}

// New constructs a Session around the location resolver, defaulting to the
// built-in schema, base-station mode, a fresh answer store, and the standard
// resolver and generator.
func New(locations LocationResolver, options ...Option) *Session {
	s := &Session{
		cfg:        schema.Default(),
		mode:       schema.ModeBaseStation,
		store:      answers.NewStore(),
		resolver:   resolve.New(),
		generator:  report.NewGenerator(),
		locations:  locations,
		defaultLat: DefaultLat,
		defaultLng: DefaultLng,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Start selects the default coordinates so a fresh session has a location
// before the first user interaction.
func (s *Session) Start(ctx context.Context) error {
	return s.SelectPoint(ctx, s.defaultLat, s.defaultLng)
}

// SelectPoint resolves location metadata for the point and commits it. If a
// newer selection was issued while this one was in flight, the result is
// discarded and ErrStaleSelection returned. A resolver failure leaves the
// previously committed location in place and records a status line.
func (s *Session) SelectPoint(ctx context.Context, lat, lng float64) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.status = "주소 정보를 가져오는 중..."
	s.mu.Unlock()

	data, err := s.locations.Resolve(ctx, lat, lng)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return ErrStaleSelection
	}
	if err != nil {
		s.status = "주소 정보를 가져오는데 실패했습니다."
		return fmt.Errorf("session: select point: %w", err)
	}
	s.loc = &data
	s.status = ""
	return nil
}

// SetAnswer records the answer for a key. An empty string is a recorded
// answer, distinct from no answer at all.
func (s *Session) SetAnswer(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Set(key, value)
}

// Answer returns the recorded answer for a key.
func (s *Session) Answer(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(key)
}

// ClearAnswer removes a recorded answer.
func (s *Session) ClearAnswer(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Delete(key)
}

// Answers returns a snapshot copy of all recorded answers.
func (s *Session) Answers() schema.Answers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// SetMode switches the survey mode. Recorded answers are kept: fields hidden
// by the new mode keep their values and reappear intact when the mode
// switches back.
func (s *Session) SetMode(mode schema.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Mode returns the current survey mode.
func (s *Session) Mode() schema.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Location returns the committed location record, or nil before the first
// successful selection.
func (s *Session) Location() *location.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loc == nil {
		return nil
	}
	copied := *s.loc
	return &copied
}

// Status returns the current status line, empty when idle.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Fields resolves the ordered renderable instances for the current mode and
// answers.
func (s *Session) Fields() ([]resolve.Instance, error) {
	s.mu.Lock()
	cfg, mode, snapshot := s.cfg, s.mode, s.store.Snapshot()
	s.mu.Unlock()
	return s.resolver.Resolve(cfg, mode, snapshot)
}

// Report renders the plain-text report for the current session state. Before
// the first successful point selection the report is empty.
func (s *Session) Report() (string, error) {
	s.mu.Lock()
	cfg, mode, snapshot := s.cfg, s.mode, s.store.Snapshot()
	var loc *location.Data
	if s.loc != nil {
		copied := *s.loc
		loc = &copied
	}
	s.mu.Unlock()

	instances, err := s.resolver.Resolve(cfg, mode, snapshot)
	if err != nil {
		return "", err
	}
	return s.generator.Generate(loc, mode, instances, snapshot), nil
}
