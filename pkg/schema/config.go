package schema

import "fmt"

// Config is an ordered, validated checklist schema.
type Config struct {
	fields []FieldDefinition
	byID   map[string]int
}

// New validates the definitions and wraps them in a Config. Schema order is
// preserved exactly as authored.
func New(fields []FieldDefinition) (*Config, error) {
	cfg := &Config{
		fields: append([]FieldDefinition(nil), fields...),
		byID:   make(map[string]int, len(fields)),
	}
	for i, field := range cfg.fields {
		if field.ID == "" {
			return nil, fmt.Errorf("schema: field at index %d has an empty id", i)
		}
		if _, exists := cfg.byID[field.ID]; exists {
			return nil, fmt.Errorf("schema: duplicate field id %q", field.ID)
		}
		cfg.byID[field.ID] = i
	}
	for _, field := range cfg.fields {
		if err := validateField(cfg, field); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// MustNew panics on validation failure. Useful for authoring built-in
// schemas at init time.
func MustNew(fields []FieldDefinition) *Config {
	cfg, err := New(fields)
	if err != nil {
		panic(err)
	}
	return cfg
}

func validateField(cfg *Config, field FieldDefinition) error {
	switch field.Kind {
	case InputSelect, InputRadio, InputCheckbox:
		if len(field.Options) == 0 {
			return fmt.Errorf("schema: field %q is a choice kind without options", field.ID)
		}
	case InputText, InputTextarea:
	default:
		return fmt.Errorf("schema: field %q has unknown input kind %q", field.ID, field.Kind)
	}
	if field.Repeated() {
		ref, ok := cfg.Field(field.RepeatBy)
		if !ok {
			return fmt.Errorf("schema: field %q repeats by unknown field %q", field.ID, field.RepeatBy)
		}
		if len(ref.Options) == 0 {
			return fmt.Errorf("schema: field %q repeats by %q, which is not a count-style field", field.ID, field.RepeatBy)
		}
	}
	return nil
}

// Fields returns the definitions in schema order. The returned slice is
// shared; callers must not mutate it.
func (c *Config) Fields() []FieldDefinition {
	if c == nil {
		return nil
	}
	return c.fields
}

// Field looks up a definition by id.
func (c *Config) Field(id string) (FieldDefinition, bool) {
	if c == nil {
		return FieldDefinition{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return FieldDefinition{}, false
	}
	return c.fields[idx], true
}

// Len reports the number of definitions.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}
