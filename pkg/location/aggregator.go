package location

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// jibunFallback and roadFallback fill address lines the geocoder has no
	// entry for; they are display values, never search keywords.
	jibunFallback = "지번 주소 없음"
	roadFallback  = "도로명 주소 없음"

	defaultLookupTimeout  = 2 * time.Second
	defaultCachePrecision = 4
)

// Aggregator merges independent external lookups into one Data record.
// Reverse geocoding is load-bearing; elevation and building-registry lookups
// degrade to absent on error or timeout. Each lookup keeps its own unbounded
// cache keyed by the coordinate bucket, owned by the aggregator for the
// lifetime of the session.
type Aggregator struct {
	geocoder  Geocoder
	elevation ElevationProvider
	building  BuildingProvider
	places    PlaceSearcher

	lookupTimeout  time.Duration
	cachePrecision int

	addressCache   *cache[Address]
	elevationCache *cache[*int]
	buildingCache  *cache[Building]
	placeCache     *cache[Building]
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithElevationProvider enables best-effort elevation lookups.
func WithElevationProvider(p ElevationProvider) AggregatorOption {
	return func(a *Aggregator) { a.elevation = p }
}

// WithBuildingProvider enables best-effort building-registry lookups.
func WithBuildingProvider(p BuildingProvider) AggregatorOption {
	return func(a *Aggregator) { a.building = p }
}

// WithPlaceSearcher enables the place-keyword fallback for building names.
func WithPlaceSearcher(p PlaceSearcher) AggregatorOption {
	return func(a *Aggregator) { a.places = p }
}

// WithLookupTimeout bounds each best-effort lookup.
func WithLookupTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if d > 0 {
			a.lookupTimeout = d
		}
	}
}

// WithCachePrecision sets how many decimal places of the coordinates form
// the cache key.
func WithCachePrecision(decimals int) AggregatorOption {
	return func(a *Aggregator) {
		if decimals >= 0 {
			a.cachePrecision = decimals
		}
	}
}

// NewAggregator constructs an Aggregator around the required geocoder.
func NewAggregator(geocoder Geocoder, options ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		geocoder:       geocoder,
		lookupTimeout:  defaultLookupTimeout,
		cachePrecision: defaultCachePrecision,
		addressCache:   newCache[Address](),
		elevationCache: newCache[*int](),
		buildingCache:  newCache[Building](),
		placeCache:     newCache[Building](),
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Resolve runs the lookups for the point concurrently and commits them as
// one Data value. A geocoding failure fails the resolution; every other
// lookup degrades to absent.
func (a *Aggregator) Resolve(ctx context.Context, lat, lng float64) (Data, error) {
	if a.geocoder == nil {
		return Data{}, fmt.Errorf("location: aggregator has no geocoder")
	}

	key := bucketKey(lat, lng, a.cachePrecision)

	var (
		addr      Address
		elevation *int
		building  Building
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resolved, err := a.lookupAddress(gctx, key, lat, lng)
		if err != nil {
			return err
		}
		addr = resolved
		return nil
	})
	if a.elevation != nil {
		g.Go(func() error {
			elevation = a.lookupElevation(gctx, key, lat, lng)
			return nil
		})
	}
	if a.building != nil {
		g.Go(func() error {
			building = a.lookupBuilding(gctx, key, lat, lng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Data{}, fmt.Errorf("location: reverse geocode: %w", err)
	}

	data := Data{
		Lat:          lat,
		Lng:          lng,
		Address:      addr.Jibun,
		RoadAddress:  addr.Road,
		Elevation:    elevation,
		BuildingName: building.Name,
		FloorCount:   building.FloorCount,
	}
	if data.Address == "" {
		data.Address = jibunFallback
	}
	if data.RoadAddress == "" {
		data.RoadAddress = roadFallback
	}
	// Registry name wins; geocoder hint second; place search last.
	if data.BuildingName == "" {
		data.BuildingName = addr.BuildingName
	}
	if data.BuildingName == "" {
		if place, ok := a.lookupPlace(ctx, addr); ok {
			data.BuildingName = place.Name
			if data.FloorCount == "" {
				data.FloorCount = place.FloorCount
			}
		}
	}
	return data, nil
}

func (a *Aggregator) lookupAddress(ctx context.Context, key string, lat, lng float64) (Address, error) {
	if cached, ok := a.addressCache.get(key); ok {
		return cached, nil
	}
	addr, err := a.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return Address{}, err
	}
	a.addressCache.put(key, addr)
	return addr, nil
}

func (a *Aggregator) lookupElevation(ctx context.Context, key string, lat, lng float64) *int {
	if cached, ok := a.elevationCache.get(key); ok {
		return cached
	}
	tctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()
	meters, err := a.elevation.Elevation(tctx, lat, lng)
	if err != nil {
		// Degraded lookups are not cached; the next selection retries.
		return nil
	}
	rounded := int(math.Round(meters))
	a.elevationCache.put(key, &rounded)
	return &rounded
}

func (a *Aggregator) lookupBuilding(ctx context.Context, key string, lat, lng float64) Building {
	if cached, ok := a.buildingCache.get(key); ok {
		return cached
	}
	tctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()
	building, err := a.building.Building(tctx, lat, lng)
	if err != nil {
		return Building{}
	}
	a.buildingCache.put(key, building)
	return building
}

// lookupPlace queries the place searcher with the resolved address. Address
// fallback literals are never used as keywords.
func (a *Aggregator) lookupPlace(ctx context.Context, addr Address) (Building, bool) {
	if a.places == nil {
		return Building{}, false
	}
	keyword := addr.Road
	if keyword == "" || keyword == roadFallback {
		keyword = addr.Jibun
	}
	if keyword == "" || keyword == jibunFallback {
		return Building{}, false
	}
	if cached, ok := a.placeCache.get(keyword); ok {
		return cached, cached.Name != ""
	}
	tctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()
	place, err := a.places.FindPlace(tctx, keyword)
	if err != nil {
		return Building{}, false
	}
	a.placeCache.put(keyword, place)
	return place, place.Name != ""
}
