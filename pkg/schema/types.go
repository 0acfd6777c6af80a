package schema

import (
	"fmt"
	"strings"
)

// InputKind is the simplified enum for checklist input controls.
type InputKind string

const (
	InputSelect   InputKind = "select"
	InputRadio    InputKind = "radio"
	InputCheckbox InputKind = "checkbox"
	InputText     InputKind = "text"
	InputTextarea InputKind = "textarea"
)

// Mode selects which checklist variant a session is surveying.
type Mode string

const (
	ModeBaseStation Mode = "baseStation"
	ModeRepeater    Mode = "repeater"
)

// ParseMode maps a raw mode token to a Mode, rejecting unknown values.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.TrimSpace(raw)) {
	case ModeBaseStation:
		return ModeBaseStation, nil
	case ModeRepeater:
		return ModeRepeater, nil
	default:
		return "", fmt.Errorf("schema: unknown survey mode %q", raw)
	}
}

// DisplayName returns the mode's label in the report language.
func (m Mode) DisplayName() string {
	if m == ModeRepeater {
		return "중계기"
	}
	return "기지국"
}

// Category groups checklist fields into sections. Ordering is significant:
// the first occurrence of a category in schema order opens a new section.
type Category string

const (
	CategoryBasic   Category = "basic"
	CategoryAntenna Category = "antenna"
	CategorySafety  Category = "safety"
	CategoryAccess  Category = "access"
)

// Title returns the section heading shown for the category.
func (c Category) Title() string {
	switch c {
	case CategoryBasic:
		return "📝 기본 정보"
	case CategoryAntenna:
		return "📡 공중선 설비"
	case CategorySafety:
		return "🦺 안전 관리"
	case CategoryAccess:
		return "🚧 출입 및 환경"
	default:
		return string(c)
	}
}

// Option is a single selectable value/label pair for choice kinds.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// FieldDefinition describes one checklist question. Definitions are authored
// once and treated as immutable; concrete renderable occurrences are derived
// by the resolver.
type FieldDefinition struct {
	// ID is the unique answer key for the field. For repeated fields it is a
	// key template; instances answer under "{id}_{index}".
	ID string `json:"id" yaml:"id"`
	// Label is the display text, usually carrying a "N. " numbering prefix.
	Label    string    `json:"label" yaml:"label"`
	Kind     InputKind `json:"kind" yaml:"kind"`
	Category Category  `json:"category" yaml:"category"`
	// Options holds the ordered choices for select/radio/checkbox kinds.
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	// VisibleWhen is an expression over the answer snapshot (see
	// pkg/visibility/expr). Empty means always visible.
	VisibleWhen string `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
	// Modes restricts the field to the listed survey modes. Empty means the
	// field applies to every mode.
	Modes []Mode `json:"modes,omitempty" yaml:"modes,omitempty"`
	// RepeatBy references another field whose numeric answer determines how
	// many instances of this field to materialize.
	RepeatBy string `json:"repeatBy,omitempty" yaml:"repeatBy,omitempty"`
}

// AppliesTo reports whether the definition is relevant for the given mode.
func (f FieldDefinition) AppliesTo(mode Mode) bool {
	if len(f.Modes) == 0 {
		return true
	}
	for _, m := range f.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Repeated reports whether the definition expands into indexed instances.
func (f FieldDefinition) Repeated() bool {
	return strings.TrimSpace(f.RepeatBy) != ""
}

// Answers is a snapshot of raw answers keyed by instance key. Absent key
// means "not answered"; there are no implicit defaults.
type Answers map[string]string

// Get returns the stored raw value, or "" when the key is unanswered.
func (a Answers) Get(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// Has reports whether the key has been answered at all.
func (a Answers) Has(key string) bool {
	if a == nil {
		return false
	}
	_, ok := a[key]
	return ok
}
