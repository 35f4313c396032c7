package formula

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Evaluator resolves a formula expression against a set of variable
// bindings. The payroll resolver owns the bindings; the evaluator only
// turns an expression into a number.
type Evaluator interface {
	Evaluate(expression string, vars map[string]float64) (float64, error)
}

type exprEvaluator struct{}

func NewEvaluator() Evaluator {
	return &exprEvaluator{}
}

func (e *exprEvaluator) Evaluate(expression string, vars map[string]float64) (float64, error) {
	env := make(map[string]interface{}, len(vars))
	for name, value := range vars {
		env[name] = value
	}

	program, err := expr.Compile(expression, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return 0, fmt.Errorf("compile formula: %w", err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return 0, fmt.Errorf("evaluate formula: %w", err)
	}

	result, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("formula did not evaluate to a number: %v", out)
	}

	return result, nil
}
