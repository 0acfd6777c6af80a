package sitesurvey

import (
	"context"

	"github.com/goliatone/go-sitesurvey/pkg/location"
	"github.com/goliatone/go-sitesurvey/pkg/report"
	"github.com/goliatone/go-sitesurvey/pkg/resolve"
	"github.com/goliatone/go-sitesurvey/pkg/schema"
	"github.com/goliatone/go-sitesurvey/pkg/session"
)

// Mode selects the checklist variant; aliased via the root package for
// convenience.
type Mode = schema.Mode

// Survey modes.
const (
	ModeBaseStation = schema.ModeBaseStation
	ModeRepeater    = schema.ModeRepeater
)

// FieldDefinition describes one checklist question.
type FieldDefinition = schema.FieldDefinition

// Instance is one renderable occurrence of a field after mode filtering,
// visibility evaluation, and repeat expansion.
type Instance = resolve.Instance

// Session holds the full state of one survey.
type Session = session.Session

// DefaultSchema returns the built-in Korean site-inspection checklist.
func DefaultSchema() *schema.Config {
	return schema.Default()
}

// NewSession exposes the session constructor from the top-level module. The
// resolver is typically a *location.Aggregator.
func NewSession(locations session.LocationResolver, options ...session.Option) *session.Session {
	return session.New(locations, options...)
}

// ResolveFields materializes the renderable instances for a schema, mode,
// and answer snapshot without a session.
func ResolveFields(cfg *schema.Config, mode Mode, answers schema.Answers) ([]Instance, error) {
	return resolve.New().Resolve(cfg, mode, answers)
}

// GenerateReport renders the plain-text report for a snapshot of session
// state. It is the simplest entry point for callers that already hold
// resolved instances and answers.
func GenerateReport(loc *location.Data, mode Mode, instances []Instance, answers schema.Answers) string {
	return report.NewGenerator().Generate(loc, mode, instances, answers)
}

// ResolveLocation runs the metadata lookups for a point through a fresh
// aggregator. Callers that resolve repeatedly should hold their own
// Aggregator to benefit from its caches.
func ResolveLocation(ctx context.Context, geocoder location.Geocoder, lat, lng float64, options ...location.AggregatorOption) (location.Data, error) {
	return location.NewAggregator(geocoder, options...).Resolve(ctx, lat, lng)
}
