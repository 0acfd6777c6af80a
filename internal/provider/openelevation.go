package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const elevationLookupPath = "/api/v1/lookup"

// OpenElevation queries the Open-Elevation lookup API for meters above sea
// level. It satisfies location.ElevationProvider.
type OpenElevation struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// OpenElevationOption configures an OpenElevation client.
type OpenElevationOption func(*OpenElevation)

// WithElevationHTTPClient replaces the HTTP client.
func WithElevationHTTPClient(client *http.Client) OpenElevationOption {
	return func(o *OpenElevation) {
		if client != nil {
			o.client = client
		}
	}
}

// WithElevationBaseURL overrides the API origin.
func WithElevationBaseURL(baseURL string) OpenElevationOption {
	return func(o *OpenElevation) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithElevationRateLimit caps outgoing requests per second. The public
// instance throttles aggressively, so the default is conservative.
func WithElevationRateLimit(rps float64) OpenElevationOption {
	return func(o *OpenElevation) {
		if rps > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewOpenElevation constructs an Open-Elevation client.
func NewOpenElevation(options ...OpenElevationOption) *OpenElevation {
	o := &OpenElevation{
		baseURL: "https://api.open-elevation.com",
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

type elevationResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// Elevation returns the elevation for a coordinate in meters.
func (o *OpenElevation) Elevation(ctx context.Context, lat, lng float64) (float64, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	query := url.Values{}
	query.Set("locations", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+elevationLookupPath+"?"+query.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("provider: open-elevation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("provider: open-elevation: unexpected status %d", resp.StatusCode)
	}

	var payload elevationResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("provider: open-elevation: %w", err)
	}
	if len(payload.Results) == 0 {
		return 0, fmt.Errorf("provider: open-elevation: empty result set")
	}
	return payload.Results[0].Elevation, nil
}
