package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-sitesurvey/pkg/location"
	"github.com/goliatone/go-sitesurvey/pkg/resolve"
	"github.com/goliatone/go-sitesurvey/pkg/schema"
)

const (
	// notEntered fills unanswered non-repeated fields.
	notEntered = "(미입력)"
	// instanceNotEntered fills unanswered slots inside a repeated group's
	// semicolon-joined line.
	instanceNotEntered = "미입력"

	// towerQtyFieldID is the one field whose value carries a unit suffix.
	towerQtyFieldID = "towerQty"
	towerQtyUnit    = "개"
)

var separator = strings.Repeat("-", 40)

// Generator renders the copy-pasteable plain-text survey report. Rendering
// is synchronous and deterministic for identical inputs; the timestamp line
// is the only moving part and its clock is injectable.
type Generator struct {
	clock func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the wall clock used for the 작성일시 line.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// NewGenerator constructs a Generator using the wall clock.
func NewGenerator(options ...Option) *Generator {
	g := &Generator{clock: time.Now}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Generate renders the report from the latest snapshot of location, mode,
// resolved instances, and answers. A nil location yields an empty string;
// the function never panics and always returns.
//
// Repeated fields render as a single line under the parent label with all
// instance values joined by semicolons; whether the group appears at all is
// decided by instance-list membership, not by re-reading the count answer.
func (g *Generator) Generate(loc *location.Data, mode schema.Mode, instances []resolve.Instance, answers schema.Answers) string {
	if loc == nil {
		return ""
	}

	lat := formatCoordinate(loc.Lat)
	lng := formatCoordinate(loc.Lng)

	lines := []string{
		fmt.Sprintf("[%s 현장 조사 데이터]", mode.DisplayName()),
		"작성일시: " + formatTimestamp(g.clock()),
		separator,
		"[위치 및 환경 정보]",
		fmt.Sprintf("좌표: 위도 %s, 경도 %s", lat, lng),
		fmt.Sprintf("위도: %s : %s", DecimalToDMS(loc.Lat), lat),
		fmt.Sprintf("경도: %s : %s", DecimalToDMS(loc.Lng), lng),
	}
	if loc.Elevation != nil {
		lines = append(lines, fmt.Sprintf("해발 고도: %dm", *loc.Elevation))
	}
	if loc.BuildingName != "" {
		lines = append(lines, "건물명: "+loc.BuildingName)
	}
	if loc.FloorCount != "" {
		lines = append(lines, "층수: "+loc.FloorCount)
	}
	lines = append(lines,
		"주소(지번): "+loc.Address,
		"주소(도로명): "+loc.RoadAddress,
		separator,
		"[조사 항목]",
	)

	for i := 0; i < len(instances); {
		inst := instances[i]
		if inst.Field.Repeated() {
			next, line := g.repeatedLine(instances, i, answers)
			lines = append(lines, line)
			i = next
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", inst.Field.Label, g.fieldValue(inst, answers)))
		i++
	}

	lines = append(lines, separator)
	return strings.Join(lines, "\n")
}

// repeatedLine aggregates the consecutive run of instances belonging to one
// repeated definition into a single semicolon-joined line under the parent
// label. Returns the index past the run.
func (g *Generator) repeatedLine(instances []resolve.Instance, start int, answers schema.Answers) (int, string) {
	field := instances[start].Field
	values := make([]string, 0, 4)
	i := start
	for i < len(instances) && instances[i].Field.ID == field.ID {
		value := answers.Get(instances[i].Key)
		if value == "" {
			value = instanceNotEntered
		}
		values = append(values, value)
		i++
	}
	return i, fmt.Sprintf("%s: %s", field.Label, strings.Join(values, ";"))
}

func (g *Generator) fieldValue(inst resolve.Instance, answers schema.Answers) string {
	value := answers.Get(inst.Key)
	if inst.Field.ID == towerQtyFieldID {
		if value == "" {
			return notEntered
		}
		return value + towerQtyUnit
	}
	if value == "" {
		return notEntered
	}
	return value
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
