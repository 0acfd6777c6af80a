package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestKakaoReverseGeocode(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "KakaoAK test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if r.URL.Path != "/v2/local/geo/coord2address.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("x"); got != "126.9786567" {
			t.Errorf("expected x to carry longitude, got %q", got)
		}
		if got := r.URL.Query().Get("y"); got != "37.566826" {
			t.Errorf("expected y to carry latitude, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[{
			"address": {"address_name": "서울 중구 태평로1가 31"},
			"road_address": {"address_name": "서울 중구 세종대로 110", "building_name": "<b>서울특별시청</b>"}
		}]}`))
	}))
	defer server.Close()

	kakao := NewKakao("test-key", WithKakaoBaseURL(server.URL))
	addr, err := kakao.ReverseGeocode(context.Background(), 37.566826, 126.9786567)
	if err != nil {
		t.Fatalf("ReverseGeocode returned error: %v", err)
	}
	if addr.Jibun != "서울 중구 태평로1가 31" {
		t.Fatalf("unexpected jibun %q", addr.Jibun)
	}
	if addr.Road != "서울 중구 세종대로 110" {
		t.Fatalf("unexpected road %q", addr.Road)
	}
	// Markup from upstream must not survive.
	if addr.BuildingName != "서울특별시청" {
		t.Fatalf("expected sanitized building name, got %q", addr.BuildingName)
	}
}

func TestKakaoReverseGeocodeEmptyDocuments(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[]}`))
	}))
	defer server.Close()

	kakao := NewKakao("test-key", WithKakaoBaseURL(server.URL))
	addr, err := kakao.ReverseGeocode(context.Background(), 37.5, 127.0)
	if err != nil {
		t.Fatalf("ReverseGeocode returned error: %v", err)
	}
	if addr.Jibun != "" || addr.Road != "" {
		t.Fatalf("expected empty address for empty documents, got %+v", addr)
	}
}

func TestKakaoFindPlace(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/local/search/keyword.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "서울 중구 세종대로 110" {
			t.Errorf("unexpected query %q", got)
		}
		w.Write([]byte(`{"documents":[{"place_name": "서울특별시청"}]}`))
	}))
	defer server.Close()

	kakao := NewKakao("test-key", WithKakaoBaseURL(server.URL))
	place, err := kakao.FindPlace(context.Background(), "서울 중구 세종대로 110")
	if err != nil {
		t.Fatalf("FindPlace returned error: %v", err)
	}
	if place.Name != "서울특별시청" {
		t.Fatalf("unexpected place name %q", place.Name)
	}
}

func TestKakaoUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	kakao := NewKakao("bad-key", WithKakaoBaseURL(server.URL))
	if _, err := kakao.ReverseGeocode(context.Background(), 37.5, 127.0); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}

func TestVWorldBuilding(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("data"); got != "LT_C_BULDINFO" {
			t.Errorf("unexpected data layer %q", got)
		}
		if got := query.Get("geomFilter"); got != "POINT(126.9786567 37.566826)" {
			t.Errorf("unexpected geomFilter %q", got)
		}
		w.Write([]byte(`{"response": {"status": "OK", "result": {"featureCollection": {"features": [
			{"properties": {"buld_nm": "서울특별시청", "grnd_flr": 13, "und_flr": 5}}
		]}}}}`))
	}))
	defer server.Close()

	vworld := NewVWorld("test-key", WithVWorldBaseURL(server.URL))
	building, err := vworld.Building(context.Background(), 37.566826, 126.9786567)
	if err != nil {
		t.Fatalf("Building returned error: %v", err)
	}
	if building.Name != "서울특별시청" {
		t.Fatalf("unexpected name %q", building.Name)
	}
	if building.FloorCount != "지상 13층 / 지하 5층" {
		t.Fatalf("unexpected floor count %q", building.FloorCount)
	}
}

func TestVWorldBuildingAlternatePropertyNames(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"status": "OK", "result": {"featureCollection": {"features": [
			{"properties": {"bld_nm": "회관", "gro_flo_co": "4"}}
		]}}}}`))
	}))
	defer server.Close()

	vworld := NewVWorld("test-key", WithVWorldBaseURL(server.URL))
	building, err := vworld.Building(context.Background(), 37.5, 127.0)
	if err != nil {
		t.Fatalf("Building returned error: %v", err)
	}
	if building.Name != "회관" {
		t.Fatalf("unexpected name %q", building.Name)
	}
	if building.FloorCount != "지상 4층" {
		t.Fatalf("unexpected floor count %q", building.FloorCount)
	}
}

func TestVWorldNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"status": "NOT_FOUND"}}`))
	}))
	defer server.Close()

	vworld := NewVWorld("test-key", WithVWorldBaseURL(server.URL))
	building, err := vworld.Building(context.Background(), 37.5, 127.0)
	if err != nil {
		t.Fatalf("Building returned error: %v", err)
	}
	if building.Name != "" || building.FloorCount != "" {
		t.Fatalf("expected zero building for NOT_FOUND, got %+v", building)
	}
}

func TestOpenElevation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/lookup" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("locations"); got != "37.566826,126.9786567" {
			t.Errorf("unexpected locations %q", got)
		}
		w.Write([]byte(`{"results": [{"elevation": 38.0}]}`))
	}))
	defer server.Close()

	elevation := NewOpenElevation(WithElevationBaseURL(server.URL))
	meters, err := elevation.Elevation(context.Background(), 37.566826, 126.9786567)
	if err != nil {
		t.Fatalf("Elevation returned error: %v", err)
	}
	if meters != 38 {
		t.Fatalf("unexpected elevation %v", meters)
	}
}

func TestOpenElevationEmptyResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	elevation := NewOpenElevation(WithElevationBaseURL(server.URL))
	if _, err := elevation.Elevation(context.Background(), 37.5, 127.0); err == nil {
		t.Fatalf("expected error for empty result set")
	}
}
