package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-sitesurvey/pkg/schema"
	"github.com/goliatone/go-sitesurvey/pkg/visibility"
	"github.com/goliatone/go-sitesurvey/pkg/visibility/expr"
)

// Instance is one concrete renderable occurrence of a field definition after
// mode filtering, visibility evaluation, and repeat expansion.
type Instance struct {
	Field schema.FieldDefinition `json:"field"`
	// Index is the repeat index, or -1 for non-repeated fields.
	Index int `json:"index"`
	// Key is the answer key for this occurrence: the field id, or
	// "{id}_{index}" for repeated instances.
	Key string `json:"key"`
	// Label is the display label; repeated instances get the 호기 prefix.
	Label string `json:"label"`
	// Section carries the category heading when this instance opens a new
	// section, detected by comparing against the previously rendered
	// instance's category. Empty otherwise.
	Section string `json:"section,omitempty"`
}

// Resolver computes the ordered list of renderable instances from a schema,
// the survey mode, and the current answers. Resolution is pure and
// order-stable: identical inputs yield identical instance lists.
type Resolver struct {
	eval visibility.Evaluator
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEvaluator swaps the visibility rule evaluator.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(r *Resolver) {
		if eval != nil {
			r.eval = eval
		}
	}
}

// New constructs a Resolver backed by the expression evaluator.
func New(options ...Option) *Resolver {
	r := &Resolver{eval: expr.New()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve walks the schema in order and materializes visible instances.
// Repeated definitions expand into count instances keyed "{id}_{index}";
// a missing, malformed, or negative count collapses to zero instances, as
// does a false visibility rule on the parent (instances inherit the parent
// gate only). Section headings follow first-difference detection against the
// previously rendered category; a category that reappears later in schema
// order re-opens a section.
func (r *Resolver) Resolve(cfg *schema.Config, mode schema.Mode, answers schema.Answers) ([]Instance, error) {
	var (
		out          []Instance
		lastCategory schema.Category
		haveCategory bool
	)

	appendInstance := func(inst Instance) {
		if !haveCategory || inst.Field.Category != lastCategory {
			inst.Section = inst.Field.Category.Title()
			lastCategory = inst.Field.Category
			haveCategory = true
		}
		out = append(out, inst)
	}

	for _, field := range cfg.Fields() {
		if !field.AppliesTo(mode) {
			continue
		}

		visible, err := r.eval.Eval(field.VisibleWhen, answers)
		if err != nil {
			return nil, fmt.Errorf("resolve: field %q: %w", field.ID, err)
		}
		if !visible {
			continue
		}

		if field.Repeated() {
			count := parseCount(answers.Get(field.RepeatBy))
			for i := 0; i < count; i++ {
				appendInstance(Instance{
					Field: field,
					Index: i,
					Key:   fmt.Sprintf("%s_%d", field.ID, i),
					Label: instanceLabel(field, i, answers),
				})
			}
			continue
		}

		appendInstance(Instance{
			Field: field,
			Index: -1,
			Key:   field.ID,
			Label: field.Label,
		})
	}

	return out, nil
}

// parseCount interprets a repeat-count answer, clamping malformed or
// negative values to zero.
func parseCount(raw string) int {
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || count < 0 {
		return 0
	}
	return count
}
