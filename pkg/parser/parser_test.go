package parser

import (
	"testing"

	"refsem/interpreter-go/pkg/ast"
)

func parseBlock(t *testing.T, source string) *ast.Block {
	t.Helper()
	block, err := ParseBlock([]byte(source))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return block
}

func TestParseLetWithInitializer(t *testing.T) {
	block := parseBlock(t, "{ let a = 1; }")
	if len(block.Statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(block.Statements))
	}

	let, ok := block.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("expected let statement, got %T", block.Statements[0])
	}
	if let.Name.Name != "a" || let.Mutable {
		t.Fatalf("unexpected binding %q (mutable=%v)", let.Name.Name, let.Mutable)
	}
	lit, ok := let.Init.(*ast.IntegerLiteral)
	if !ok || lit.Text != "1" {
		t.Fatalf("expected integer literal 1, got %#v", let.Init)
	}
}

func TestParseLetWithoutInitializer(t *testing.T) {
	block := parseBlock(t, "{ let mut b; }")
	let, ok := block.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("expected let statement, got %T", block.Statements[0])
	}
	if !let.Mutable {
		t.Fatalf("expected mutable binding")
	}
	if let.Init != nil {
		t.Fatalf("expected no initializer, got %#v", let.Init)
	}
}

func TestParseReferenceAndDereference(t *testing.T) {
	block := parseBlock(t, "{ b = &a; let c = *b; }")
	if len(block.Statements) != 2 {
		t.Fatalf("expected two statements, got %d", len(block.Statements))
	}

	exprStmt, ok := block.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %T", block.Statements[0])
	}
	assign, ok := exprStmt.Expr.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("expected assignment, got %T", exprStmt.Expr)
	}
	if id, ok := assign.Left.(*ast.Identifier); !ok || id.Name != "b" {
		t.Fatalf("expected identifier b on the left, got %#v", assign.Left)
	}
	ref, ok := assign.Right.(*ast.ReferenceExpression)
	if !ok {
		t.Fatalf("expected reference expression, got %T", assign.Right)
	}
	if id, ok := ref.Operand.(*ast.Identifier); !ok || id.Name != "a" {
		t.Fatalf("expected &a, got %#v", ref.Operand)
	}

	let, ok := block.Statements[1].(*ast.LetStatement)
	if !ok {
		t.Fatalf("expected let statement, got %T", block.Statements[1])
	}
	deref, ok := let.Init.(*ast.DereferenceExpression)
	if !ok {
		t.Fatalf("expected dereference, got %T", let.Init)
	}
	if id, ok := deref.Operand.(*ast.Identifier); !ok || id.Name != "b" {
		t.Fatalf("expected *b, got %#v", deref.Operand)
	}
}

func TestParseDereferenceChain(t *testing.T) {
	block := parseBlock(t, "{ **c = 7; }")
	exprStmt := block.Statements[0].(*ast.ExpressionStatement)
	assign := exprStmt.Expr.(*ast.AssignmentExpression)

	outer, ok := assign.Left.(*ast.DereferenceExpression)
	if !ok {
		t.Fatalf("expected dereference on the left, got %T", assign.Left)
	}
	inner, ok := outer.Operand.(*ast.DereferenceExpression)
	if !ok {
		t.Fatalf("expected nested dereference, got %T", outer.Operand)
	}
	if id, ok := inner.Operand.(*ast.Identifier); !ok || id.Name != "c" {
		t.Fatalf("expected **c, got %#v", inner.Operand)
	}
}

func TestParseWithoutOuterBraces(t *testing.T) {
	block := parseBlock(t, "let a = 1; a = 2;")
	if len(block.Statements) != 2 {
		t.Fatalf("expected two statements, got %d", len(block.Statements))
	}
}

func TestParseSkipsComments(t *testing.T) {
	block := parseBlock(t, `{
		// binds a
		let a = 1;
	}`)
	if len(block.Statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(block.Statements))
	}
}

func TestParseUnsupportedConstructsSurviveParsing(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"while loop", "{ while true { } }"},
		{"function call", "{ foo(); }"},
		{"tuple pattern", "{ let (a, b) = (1, 2); }"},
		{"string literal", `{ let s = "hi"; }`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			block := parseBlock(t, c.source)
			found := false
			for _, stmt := range block.Statements {
				if containsUnsupported(stmt) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected an unsupported node for %q", c.source)
			}
		})
	}
}

func containsUnsupported(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.UnsupportedNode:
		return true
	case *ast.LetStatement:
		return n.Init != nil && containsUnsupported(n.Init)
	case *ast.ExpressionStatement:
		return containsUnsupported(n.Expr)
	case *ast.AssignmentExpression:
		return containsUnsupported(n.Left) || containsUnsupported(n.Right)
	case *ast.ReferenceExpression:
		return containsUnsupported(n.Operand)
	case *ast.DereferenceExpression:
		return containsUnsupported(n.Operand)
	default:
		return false
	}
}

func TestParseSyntaxErrorFails(t *testing.T) {
	if _, err := ParseBlock([]byte("{ let = ; }")); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestParserReuse(t *testing.T) {
	p, err := NewSnippetParser()
	if err != nil {
		t.Fatalf("NewSnippetParser: %v", err)
	}
	defer p.Close()

	for _, src := range []string{"{ let a = 1; }", "{ let b = 2; }"} {
		if _, err := p.ParseBlock([]byte(src)); err != nil {
			t.Fatalf("parse %q failed: %v", src, err)
		}
	}
}
