package resolve

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitesurvey/pkg/schema"
)

const (
	// towerTypeKey is the answer consulted for the per-unit label prefix.
	towerTypeKey = "towerType"
	// towerTypeFallback labels units before the tower type is answered.
	towerTypeFallback = "폴"
)

// instanceLabel derives the display label for a repeated instance, e.g.
// "원폴 1호기 지선 수": the definition's "N. " numbering prefix is stripped
// and the tower type plus unit number prepended. Purely cosmetic; answer
// keys are untouched.
func instanceLabel(field schema.FieldDefinition, index int, answers schema.Answers) string {
	base := field.Label
	if _, rest, found := strings.Cut(base, ". "); found {
		base = rest
	}
	towerType := answers.Get(towerTypeKey)
	if towerType == "" {
		towerType = towerTypeFallback
	}
	return fmt.Sprintf("%s %d호기 %s", towerType, index+1, base)
}
