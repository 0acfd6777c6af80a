package expr

import (
	"strings"
	"testing"

	"github.com/goliatone/go-sitesurvey/pkg/schema"
)

func TestEvaluatorStringComparison(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval(`step_status == "있음"`, schema.Answers{"step_status": "있음"})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for matching string")
	}

	ok, err = eval.Eval(`step_status == "있음"`, schema.Answers{"step_status": "없음"})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected false for non-matching string")
	}
}

func TestEvaluatorEmptyRuleIsVisible(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("", nil)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected empty rule to be visible")
	}

	ok, err = eval.Eval("   ", schema.Answers{})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected blank rule to be visible")
	}
}

func TestEvaluatorTruthyAndNot(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("remarks", schema.Answers{"remarks": "경사 심함"})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected answered field to be truthy")
	}

	ok, err = eval.Eval("remarks", schema.Answers{"remarks": "   "})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected blank answer to be falsy")
	}

	ok, err = eval.Eval("!remarks", schema.Answers{})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected !unanswered to be true")
	}
}

func TestEvaluatorNullLiteral(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("missing == null", schema.Answers{})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for missing == null")
	}

	// An empty string is a recorded answer, so it is not null.
	ok, err = eval.Eval("remarks != null", schema.Answers{"remarks": ""})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected recorded empty answer to be != null")
	}
}

func TestEvaluatorNumberAndBoolCoercion(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("towerQty == 2", schema.Answers{"towerQty": " 2 "})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected stored string to coerce to number")
	}

	// Non-numeric answers coerce to 0.
	ok, err = eval.Eval("towerQty == 0", schema.Answers{"towerQty": "abc"})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected malformed number to coerce to zero")
	}

	ok, err = eval.Eval("highAltitude == true", schema.Answers{"highAltitude": "true"})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected bool literal to coerce stored string")
	}
}

func TestEvaluatorComposition(t *testing.T) {
	t.Parallel()

	eval := New()
	answers := schema.Answers{
		"step_status":   "있음",
		"ladder_status": "없음",
	}

	ok, err := eval.Eval(`step_status == "있음" && ladder_status != "있음"`, answers)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected conjunction to hold")
	}

	ok, err = eval.Eval(`(step_status == "없음") || ladder_status == "없음"`, answers)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected disjunction to hold")
	}
}

func TestEvaluatorMalformedRules(t *testing.T) {
	t.Parallel()

	eval := New()

	cases := []string{
		`step_status = "있음"`,
		`step_status == "있음`,
		`step_status &`,
		`(step_status == "있음"`,
		`step_status == "있음" extra`,
	}
	for _, rule := range cases {
		if _, err := eval.Eval(rule, schema.Answers{"step_status": "있음"}); err == nil {
			t.Fatalf("expected error for rule %q", rule)
		} else if !strings.Contains(err.Error(), "visibility/expr") {
			t.Fatalf("expected package-prefixed error, got %v", err)
		}
	}
}

func TestCheckValidatesWithoutAnswers(t *testing.T) {
	t.Parallel()

	if err := Check(`step_status == "있음"`); err != nil {
		t.Fatalf("Check returned error for valid rule: %v", err)
	}
	if err := Check(`step_status ==`); err == nil {
		t.Fatalf("expected error for truncated rule")
	}
}
