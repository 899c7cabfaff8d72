// Package interpreter evaluates parsed snippet blocks against a mutable
// environment. The evaluation strategy is pluggable: Model captures the one
// capability a strategy needs, so a stricter interpretation (for example an
// ownership-checking one) can sit behind the same entry points.
package interpreter

import (
	"errors"

	"refsem/interpreter-go/pkg/ast"
	"refsem/interpreter-go/pkg/parser"
	"refsem/interpreter-go/pkg/runtime"
)

// Evaluation failures beyond the environment's own lookup errors.
// ErrTypeMismatch reports a dereference of a non-reference value;
// ErrUnsupportedConstruct reports a statement or expression shape outside the
// supported subset.
var (
	ErrTypeMismatch         = errors.New("cannot dereference a non-reference value")
	ErrUnsupportedConstruct = errors.New("unsupported construct")
)

// Model evaluates a block against an environment. Evaluation mutates env in
// place and stops at the first failing statement, which is propagated
// verbatim.
type Model interface {
	EvalBlock(block *ast.Block, env *runtime.Environment) error
}

// Interpret parses raw snippet text and evaluates it against a fresh
// environment. The environment is returned only on complete success; a
// failure anywhere in the block discards it.
func Interpret(model Model, source string) (*runtime.Environment, error) {
	block, err := parser.ParseBlock([]byte(source))
	if err != nil {
		return nil, err
	}
	env := runtime.NewEnvironment()
	if err := model.EvalBlock(block, env); err != nil {
		return nil, err
	}
	return env, nil
}
