// Package filter compiles boolean expressions for narrowing CRM
// records on the command line. Expressions are written in the expr
// language and evaluated against a flat map of record fields, e.g.
//
//	country == "BE" and hasTag("vip")
//	email contains "@acme"
//	icontains(email, "@ACME")
//
// contains, startsWith and endsWith are expr's native case-sensitive
// operators; the i-prefixed helpers fold case first.
package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled record predicate.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into a reusable filter. Record fields
// are free variables; the helper functions below are available.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions(nil)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Match evaluates the filter against one record.
func (f *Filter) Match(record map[string]any) (bool, error) {
	env := helperFunctions(record)
	for key, value := range record {
		env[key] = value
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Err: err}
	}

	// AsBool at compile time guarantees the assertion.
	return result.(bool), nil
}

// Expression returns the original expression text.
func (f *Filter) Expression() string {
	return f.expression
}

// helperFunctions builds the evaluation environment. The record is nil
// during compilation, when only the function signatures matter.
func helperFunctions(record map[string]any) map[string]any {
	// contains, startsWith and endsWith are reserved operator tokens
	// in expr, so the case-folding variants need distinct names.
	return map[string]any{
		"icontains": func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
		"istartsWith": func(s, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
		},
		"iendsWith": func(s, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"hasTag": func(tag string) bool {
			tags, ok := record["tags"].([]string)
			if !ok {
				return false
			}
			for _, t := range tags {
				if strings.EqualFold(t, tag) {
					return true
				}
			}
			return false
		},
	}
}
