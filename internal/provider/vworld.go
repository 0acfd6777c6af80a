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

	"github.com/goliatone/go-sitesurvey/pkg/location"
)

const vworldDataPath = "/req/data"

// VWorld queries the VWorld building-registry layer (LT_C_BULDINFO) for the
// building at a coordinate. It satisfies location.BuildingProvider.
type VWorld struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// VWorldOption configures a VWorld client.
type VWorldOption func(*VWorld)

// WithVWorldHTTPClient replaces the HTTP client.
func WithVWorldHTTPClient(client *http.Client) VWorldOption {
	return func(v *VWorld) {
		if client != nil {
			v.client = client
		}
	}
}

// WithVWorldBaseURL overrides the API origin.
func WithVWorldBaseURL(baseURL string) VWorldOption {
	return func(v *VWorld) {
		if baseURL != "" {
			v.baseURL = baseURL
		}
	}
}

// WithVWorldRateLimit caps outgoing requests per second.
func WithVWorldRateLimit(rps float64) VWorldOption {
	return func(v *VWorld) {
		if rps > 0 {
			v.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewVWorld constructs a VWorld client authenticated by the API key.
func NewVWorld(apiKey string, options ...VWorldOption) *VWorld {
	v := &VWorld{
		apiKey:  apiKey,
		baseURL: "https://api.vworld.kr",
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

type vworldResponse struct {
	Response struct {
		Status string `json:"status"`
		Result struct {
			FeatureCollection struct {
				Features []struct {
					Properties map[string]any `json:"properties"`
				} `json:"features"`
			} `json:"featureCollection"`
		} `json:"result"`
	} `json:"response"`
}

// Building looks the coordinate up in the registry layer. A NOT_FOUND status
// or empty feature list yields a zero Building.
func (v *VWorld) Building(ctx context.Context, lat, lng float64) (location.Building, error) {
	query := url.Values{}
	query.Set("service", "data")
	query.Set("request", "GetFeature")
	query.Set("data", "LT_C_BULDINFO")
	query.Set("key", v.apiKey)
	query.Set("format", "json")
	query.Set("geomFilter", fmt.Sprintf("POINT(%s %s)",
		strconv.FormatFloat(lng, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64)))
	query.Set("size", "1")

	if err := v.limiter.Wait(ctx); err != nil {
		return location.Building{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+vworldDataPath+"?"+query.Encode(), nil)
	if err != nil {
		return location.Building{}, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return location.Building{}, fmt.Errorf("provider: vworld: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return location.Building{}, fmt.Errorf("provider: vworld: unexpected status %d", resp.StatusCode)
	}

	var payload vworldResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return location.Building{}, fmt.Errorf("provider: vworld: %w", err)
	}
	if payload.Response.Status != "OK" {
		return location.Building{}, nil
	}
	features := payload.Response.Result.FeatureCollection.Features
	if len(features) == 0 {
		return location.Building{}, nil
	}

	props := features[0].Properties
	return location.Building{
		Name:       sanitize(firstString(props, "buld_nm", "bld_nm")),
		FloorCount: formatFloors(props),
	}, nil
}

// formatFloors renders ground and underground floor counts as display text,
// e.g. "지상 5층 / 지하 1층". Layer revisions have shipped the counts under
// different property names, so several are tried.
func formatFloors(props map[string]any) string {
	ground := firstNumber(props, "grnd_flr", "gro_flo_co", "grnd_flr_cnt")
	under := firstNumber(props, "und_flr", "und_flo_co", "und_flr_cnt")
	switch {
	case ground > 0 && under > 0:
		return fmt.Sprintf("지상 %d층 / 지하 %d층", ground, under)
	case ground > 0:
		return fmt.Sprintf("지상 %d층", ground)
	case under > 0:
		return fmt.Sprintf("지하 %d층", under)
	default:
		return ""
	}
}

func firstString(props map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := props[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func firstNumber(props map[string]any, keys ...string) int {
	for _, key := range keys {
		switch value := props[key].(type) {
		case float64:
			return int(value)
		case string:
			if n, err := strconv.Atoi(value); err == nil {
				return n
			}
		}
	}
	return 0
}
