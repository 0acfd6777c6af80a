package visibility

import "github.com/goliatone/go-sitesurvey/pkg/schema"

// Evaluator decides whether a checklist field is visible given its rule
// string and the current answer snapshot.
type Evaluator interface {
	Eval(rule string, answers schema.Answers) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(rule string, answers schema.Answers) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(rule string, answers schema.Answers) (bool, error) {
	return fn(rule, answers)
}
