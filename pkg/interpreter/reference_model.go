package interpreter

import (
	"fmt"

	"refsem/interpreter-go/pkg/ast"
	"refsem/interpreter-go/pkg/runtime"
)

// ReferenceModel evaluates blocks with plain reference semantics: a reference
// value names a place, dereferencing re-reads the place live, and assignment
// through a dereference chain mutates the ultimate referent.
type ReferenceModel struct{}

// EvalBlock executes the statements in order against env, halting on the
// first error.
func (m ReferenceModel) EvalBlock(block *ast.Block, env *runtime.Environment) error {
	for _, stmt := range block.Statements {
		if err := m.evalStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// evalPlace resolves a location expression to the underlying place name,
// following indirection one live hop at a time.
func (m ReferenceModel) evalPlace(expr ast.Expression, env *runtime.Environment) (string, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name, nil
	case *ast.DereferenceExpression:
		place, err := m.evalPlace(e.Operand, env)
		if err != nil {
			return "", err
		}
		value, err := env.Lookup(place)
		if err != nil {
			return "", err
		}
		ref, ok := value.(runtime.ReferenceValue)
		if !ok {
			return "", fmt.Errorf("cannot deref value %s: %w", value, ErrTypeMismatch)
		}
		return ref.Place, nil
	default:
		return "", unsupportedNode(expr)
	}
}

func (m ReferenceModel) evalExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.LiteralValue{Text: e.Text}, nil
	case *ast.Identifier:
		return env.Lookup(e.Name)
	case *ast.ReferenceExpression:
		// Only a bare name may be referenced; the subset has no
		// references to arbitrary location expressions.
		operand, ok := e.Operand.(*ast.Identifier)
		if !ok {
			return nil, unsupportedNode(e.Operand)
		}
		return runtime.ReferenceValue{Place: operand.Name}, nil
	case *ast.DereferenceExpression:
		place, err := m.evalPlace(e, env)
		if err != nil {
			return nil, err
		}
		return env.Lookup(place)
	case *ast.AssignmentExpression:
		place, err := m.evalPlace(e.Left, env)
		if err != nil {
			return nil, err
		}
		value, err := m.evalExpression(e.Right, env)
		if err != nil {
			return nil, err
		}
		env.Insert(place, value)
		return runtime.UnitValue{}, nil
	default:
		return nil, unsupportedNode(expr)
	}
}

func (m ReferenceModel) evalStatement(stmt ast.Statement, env *runtime.Environment) error {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		var value runtime.Value = runtime.UndefinedValue{}
		if s.Init != nil {
			v, err := m.evalExpression(s.Init, env)
			if err != nil {
				return err
			}
			value = v
		}
		env.Insert(s.Name.Name, value)
		return nil
	case *ast.ExpressionStatement:
		_, err := m.evalExpression(s.Expr, env)
		return err
	default:
		return unsupportedNode(stmt)
	}
}

func unsupportedNode(node ast.Node) error {
	if u, ok := node.(*ast.UnsupportedNode); ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedConstruct, u.Kind)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedConstruct, node.NodeType())
}
