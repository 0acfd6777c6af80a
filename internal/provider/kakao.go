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

const (
	kakaoCoordPath   = "/v2/local/geo/coord2address.json"
	kakaoKeywordPath = "/v2/local/search/keyword.json"
)

// Kakao talks to the Kakao Local REST API for reverse geocoding and
// place-keyword search. It satisfies location.Geocoder and
// location.PlaceSearcher.
type Kakao struct {
	restKey string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// KakaoOption configures a Kakao client.
type KakaoOption func(*Kakao)

// WithKakaoHTTPClient replaces the HTTP client.
func WithKakaoHTTPClient(client *http.Client) KakaoOption {
	return func(k *Kakao) {
		if client != nil {
			k.client = client
		}
	}
}

// WithKakaoBaseURL overrides the API origin.
func WithKakaoBaseURL(baseURL string) KakaoOption {
	return func(k *Kakao) {
		if baseURL != "" {
			k.baseURL = baseURL
		}
	}
}

// WithKakaoRateLimit caps outgoing requests per second.
func WithKakaoRateLimit(rps float64) KakaoOption {
	return func(k *Kakao) {
		if rps > 0 {
			k.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewKakao constructs a Kakao Local client authenticated by the REST key.
func NewKakao(restKey string, options ...KakaoOption) *Kakao {
	k := &Kakao{
		restKey: restKey,
		baseURL: "https://dapi.kakao.com",
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 1),
	}
	for _, opt := range options {
		if opt != nil {
			opt(k)
		}
	}
	return k
}

type kakaoCoordResponse struct {
	Documents []struct {
		Address *struct {
			AddressName string `json:"address_name"`
		} `json:"address"`
		RoadAddress *struct {
			AddressName  string `json:"address_name"`
			BuildingName string `json:"building_name"`
		} `json:"road_address"`
	} `json:"documents"`
}

// ReverseGeocode resolves the 지번 and 도로명 addresses for a coordinate.
// An empty document list is not an error; the caller applies its own
// fallback text.
func (k *Kakao) ReverseGeocode(ctx context.Context, lat, lng float64) (location.Address, error) {
	query := url.Values{}
	query.Set("x", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))

	var payload kakaoCoordResponse
	if err := k.get(ctx, kakaoCoordPath, query, &payload); err != nil {
		return location.Address{}, fmt.Errorf("provider: kakao coord2address: %w", err)
	}
	if len(payload.Documents) == 0 {
		return location.Address{}, nil
	}

	doc := payload.Documents[0]
	var addr location.Address
	if doc.Address != nil {
		addr.Jibun = sanitize(doc.Address.AddressName)
	}
	if doc.RoadAddress != nil {
		addr.Road = sanitize(doc.RoadAddress.AddressName)
		addr.BuildingName = sanitize(doc.RoadAddress.BuildingName)
	}
	return addr, nil
}

type kakaoKeywordResponse struct {
	Documents []struct {
		PlaceName string `json:"place_name"`
	} `json:"documents"`
}

// FindPlace returns the top place match for an address keyword. A result
// with no match yields a zero Building, not an error.
func (k *Kakao) FindPlace(ctx context.Context, keyword string) (location.Building, error) {
	query := url.Values{}
	query.Set("query", keyword)
	query.Set("size", "1")

	var payload kakaoKeywordResponse
	if err := k.get(ctx, kakaoKeywordPath, query, &payload); err != nil {
		return location.Building{}, fmt.Errorf("provider: kakao keyword: %w", err)
	}
	if len(payload.Documents) == 0 {
		return location.Building{}, nil
	}
	return location.Building{Name: sanitize(payload.Documents[0].PlaceName)}, nil
}

func (k *Kakao) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := k.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "KakaoAK "+k.restKey)

	resp, err := k.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
