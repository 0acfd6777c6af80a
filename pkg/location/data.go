package location

import "context"

// Data is the merged location record for one selected point. It is created
// whole by the Aggregator and replaced, never mutated, on each selection.
type Data struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	// Address is the lot-number (지번) address; RoadAddress the 도로명 one.
	// Both are always populated, falling back to the upstream "없음"
	// literals when the geocoder has no entry for the point.
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	// Elevation is rounded meters above sea level; nil when the lookup
	// degraded.
	Elevation    *int   `json:"elevation,omitempty"`
	BuildingName string `json:"buildingName,omitempty"`
	// FloorCount is free text such as "지상 5층 / 지하 1층".
	FloorCount string `json:"floorCount,omitempty"`
}

// Address is a reverse-geocoding result.
type Address struct {
	// Jibun is the lot-number address; empty when the geocoder has none.
	Jibun string
	// Road is the road-name address; empty when the geocoder has none.
	Road string
	// BuildingName is the geocoder's embedded building-name hint. A
	// registry-sourced name takes precedence over it.
	BuildingName string
}

// Building is a building-registry (or place-search) result. A zero value
// means the source knows nothing about the point.
type Building struct {
	Name string
	// FloorCount is preformatted free text, e.g. "지상 5층 / 지하 1층".
	FloorCount string
}

// Geocoder resolves addresses for a coordinate. It is the load-bearing
// lookup: when it fails, the whole resolution fails.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (Address, error)
}

// ElevationProvider returns meters above sea level for a coordinate. It is
// best-effort and must honor the caller-supplied context deadline.
type ElevationProvider interface {
	Elevation(ctx context.Context, lat, lng float64) (float64, error)
}

// BuildingProvider looks a coordinate up in a building registry. Best-effort.
type BuildingProvider interface {
	Building(ctx context.Context, lat, lng float64) (Building, error)
}

// PlaceSearcher finds a representative place for an address keyword. Used as
// the building-name fallback when neither registry nor geocoder has one.
type PlaceSearcher interface {
	FindPlace(ctx context.Context, keyword string) (Building, error)
}
