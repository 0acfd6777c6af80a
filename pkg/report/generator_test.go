package report

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sitesurvey/pkg/location"
	"github.com/goliatone/go-sitesurvey/pkg/resolve"
	"github.com/goliatone/go-sitesurvey/pkg/schema"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 29, 13, 5, 7, 0, time.UTC)
}

func testLocation() *location.Data {
	elevation := 38
	return &location.Data{
		Lat:          37.566826,
		Lng:          126.9786567,
		Address:      "서울 중구 태평로1가 31",
		RoadAddress:  "서울 중구 세종대로 110",
		Elevation:    &elevation,
		BuildingName: "서울특별시청",
		FloorCount:   "지상 13층 / 지하 5층",
	}
}

func reportSchema(t *testing.T) *schema.Config {
	t.Helper()
	cfg, err := schema.New([]schema.FieldDefinition{
		{
			ID:          "installFloor",
			Label:       "3. 설치층",
			Kind:        schema.InputText,
			Category:    schema.CategoryBasic,
			Placeholder: "예: 1층, B1층, 옥상",
		},
		{
			ID:       "towerType",
			Label:    "9. 철탑유형",
			Kind:     schema.InputSelect,
			Category: schema.CategoryAntenna,
			Options:  []schema.Option{{Label: "원폴", Value: "원폴"}},
		},
		{
			ID:       "towerQty",
			Label:    "10. 설치 수량",
			Kind:     schema.InputSelect,
			Category: schema.CategoryAntenna,
			Options:  []schema.Option{{Label: "1", Value: "1"}, {Label: "2", Value: "2"}},
		},
		{
			ID:       "guyWireCount",
			Label:    "11. 지선 수",
			Kind:     schema.InputSelect,
			Category: schema.CategoryAntenna,
			Options:  []schema.Option{{Label: "1", Value: "1"}, {Label: "미설치", Value: "미설치"}},
			RepeatBy: "towerQty",
		},
	})
	if err != nil {
		t.Fatalf("schema.New returned error: %v", err)
	}
	return cfg
}

func TestGenerateFullReport(t *testing.T) {
	t.Parallel()

	cfg := reportSchema(t)
	answers := schema.Answers{
		"installFloor":   "3F",
		"towerQty":       "2",
		"guyWireCount_0": "1",
		"guyWireCount_1": "미설치",
	}
	instances, err := resolve.New().Resolve(cfg, schema.ModeBaseStation, answers)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	got := NewGenerator(WithClock(fixedClock)).Generate(testLocation(), schema.ModeBaseStation, instances, answers)

	want := strings.Join([]string{
		"[기지국 현장 조사 데이터]",
		"작성일시: 2026. 8. 29. 오후 1:05:07",
		"----------------------------------------",
		"[위치 및 환경 정보]",
		"좌표: 위도 37.566826, 경도 126.978657",
		`위도: 37° 34' 00.57" : 37.566826`,
		`경도: 126° 58' 43.16" : 126.978657`,
		"해발 고도: 38m",
		"건물명: 서울특별시청",
		"층수: 지상 13층 / 지하 5층",
		"주소(지번): 서울 중구 태평로1가 31",
		"주소(도로명): 서울 중구 세종대로 110",
		"----------------------------------------",
		"[조사 항목]",
		"3. 설치층: 3F",
		"9. 철탑유형: (미입력)",
		"10. 설치 수량: 2개",
		"11. 지선 수: 1;미설치",
		"----------------------------------------",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateNilLocation(t *testing.T) {
	t.Parallel()

	got := NewGenerator(WithClock(fixedClock)).Generate(nil, schema.ModeBaseStation, nil, nil)
	if got != "" {
		t.Fatalf("expected empty report without a location, got %q", got)
	}
}

func TestGenerateRepeaterTitle(t *testing.T) {
	t.Parallel()

	got := NewGenerator(WithClock(fixedClock)).Generate(testLocation(), schema.ModeRepeater, nil, nil)
	if !strings.HasPrefix(got, "[중계기 현장 조사 데이터]") {
		t.Fatalf("expected repeater title, got %q", strings.SplitN(got, "\n", 2)[0])
	}
}

func TestGenerateOmitsOptionalLocationLines(t *testing.T) {
	t.Parallel()

	loc := &location.Data{
		Lat:         37.566826,
		Lng:         126.9786567,
		Address:     "지번 주소 없음",
		RoadAddress: "도로명 주소 없음",
	}
	got := NewGenerator(WithClock(fixedClock)).Generate(loc, schema.ModeBaseStation, nil, nil)

	for _, absent := range []string{"해발 고도:", "건물명:", "층수:"} {
		if strings.Contains(got, absent) {
			t.Fatalf("expected %q line to be omitted:\n%s", absent, got)
		}
	}
	if !strings.Contains(got, "주소(지번): 지번 주소 없음") {
		t.Fatalf("expected jibun fallback line:\n%s", got)
	}
	if !strings.Contains(got, "주소(도로명): 도로명 주소 없음") {
		t.Fatalf("expected road fallback line:\n%s", got)
	}
}

func TestGenerateZeroElevationIsRendered(t *testing.T) {
	t.Parallel()

	elevation := 0
	loc := testLocation()
	loc.Elevation = &elevation

	got := NewGenerator(WithClock(fixedClock)).Generate(loc, schema.ModeBaseStation, nil, nil)
	if !strings.Contains(got, "해발 고도: 0m") {
		t.Fatalf("expected sea-level elevation to render:\n%s", got)
	}
}

func TestGenerateZeroRepeatInstancesOmitsLine(t *testing.T) {
	t.Parallel()

	cfg := reportSchema(t)
	answers := schema.Answers{"installFloor": "3F"}
	instances, err := resolve.New().Resolve(cfg, schema.ModeBaseStation, answers)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	got := NewGenerator(WithClock(fixedClock)).Generate(testLocation(), schema.ModeBaseStation, instances, answers)
	if strings.Contains(got, "지선 수") {
		t.Fatalf("expected no repeated-field line without instances:\n%s", got)
	}
	if !strings.Contains(got, "10. 설치 수량: (미입력)") {
		t.Fatalf("expected unanswered count to fall back without unit suffix:\n%s", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 8, 29, 0, 0, 5, 0, time.UTC), "2026. 8. 29. 오전 12:00:05"},
		{time.Date(2026, 8, 29, 11, 59, 59, 0, time.UTC), "2026. 8. 29. 오전 11:59:59"},
		{time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), "2026. 8. 29. 오후 12:00:00"},
		{time.Date(2026, 12, 1, 23, 5, 7, 0, time.UTC), "2026. 12. 1. 오후 11:05:07"},
	}
	for _, tc := range cases {
		if got := formatTimestamp(tc.at); got != tc.want {
			t.Fatalf("formatTimestamp(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}
