package schema

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const jsonDocument = `{
  "fields": [
    {"id": "siteType", "label": "1. 국사형태", "kind": "select",
     "category": "basic",
     "options": [{"label": "건물", "value": "건물"}]},
    {"id": "remarks", "label": "비고", "kind": "textarea", "category": "access"}
  ]
}`

const yamlDocument = `fields:
  - id: siteType
    label: "1. 국사형태"
    kind: select
    category: basic
    options:
      - label: 건물
        value: 건물
  - id: remarks
    label: 비고
    kind: textarea
    category: access
`

func TestParseJSONDocument(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(jsonDocument), "checklist.json")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", cfg.Len())
	}

	field, ok := cfg.Field("siteType")
	if !ok {
		t.Fatalf("expected siteType field")
	}
	want := FieldDefinition{
		ID:       "siteType",
		Label:    "1. 국사형태",
		Kind:     InputSelect,
		Category: CategoryBasic,
		Options:  []Option{{Label: "건물", Value: "건물"}},
	}
	if diff := cmp.Diff(want, field); diff != "" {
		t.Fatalf("field mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLMatchesJSON(t *testing.T) {
	t.Parallel()

	fromJSON, err := Parse([]byte(jsonDocument), "checklist.json")
	if err != nil {
		t.Fatalf("Parse JSON returned error: %v", err)
	}
	fromYAML, err := Parse([]byte(yamlDocument), "checklist.yaml")
	if err != nil {
		t.Fatalf("Parse YAML returned error: %v", err)
	}
	if diff := cmp.Diff(fromJSON.Fields(), fromYAML.Fields()); diff != "" {
		t.Fatalf("JSON and YAML documents decoded differently (-json +yaml):\n%s", diff)
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":     "",
		"not a doc": "][",
		"no fields": `{"fields": []}`,
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw), name); err == nil {
			t.Fatalf("expected error for %s document", name)
		}
	}

	// Validation failures carry the source name.
	dup := `{"fields": [
    {"id": "a", "label": "A", "kind": "text"},
    {"id": "a", "label": "A2", "kind": "text"}
  ]}`
	_, err := Parse([]byte(dup), "dup.json")
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if !strings.Contains(err.Error(), "dup.json") {
		t.Fatalf("expected source in error, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"schemas/checklist.yaml": &fstest.MapFile{Data: []byte(yamlDocument)},
		"schemas/readme.txt":     &fstest.MapFile{Data: []byte("not a schema")},
	}

	cfg, err := LoadFS(fsys, "schemas/checklist.yaml")
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if cfg.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", cfg.Len())
	}

	if _, err := LoadFS(fsys, "schemas/readme.txt"); err == nil {
		t.Fatalf("expected error for non-schema extension")
	}
	if _, err := LoadFS(fsys, "schemas/missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
