package parser

import (
	"fmt"
	"math/big"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"refsem/interpreter-go/pkg/ast"
)

// SnippetParser wraps a tree-sitter parser configured for the Rust grammar.
// Snippets are statement sequences, which the grammar only accepts inside a
// function item, so parsing wraps the input in a synthetic one.
type SnippetParser struct {
	parser *sitter.Parser
}

// NewSnippetParser constructs a parser with the Rust language loaded.
func NewSnippetParser() (*SnippetParser, error) {
	lang := sitter.NewLanguage(tree_sitter_rust.Language())
	if lang == nil {
		return nil, fmt.Errorf("parser: rust language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &SnippetParser{parser: p}, nil
}

// Close releases parser resources.
func (p *SnippetParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// ParseBlock parses a snippet into a block of statements. The input may be a
// braced block or a bare statement sequence. Constructs outside the supported
// subset are carried through as unsupported nodes; only grammar-level syntax
// errors fail here.
func (p *SnippetParser) ParseBlock(source []byte) (*ast.Block, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	wrapped := wrapSnippet(source)
	tree := p.parser.Parse(wrapped, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "source_file" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, fmt.Errorf("parser: syntax errors present")
	}

	body := snippetBody(root)
	if body == nil {
		return nil, fmt.Errorf("parser: snippet body not found")
	}

	statements := make([]ast.Statement, 0, body.NamedChildCount())
	for i := uint(0); i < body.NamedChildCount(); i++ {
		node := body.NamedChild(i)
		if node == nil || isIgnorableNode(node) {
			continue
		}
		statements = append(statements, convertStatement(node, wrapped))
	}

	return ast.NewBlock(statements), nil
}

// ParseBlock is the package-level convenience: it builds a parser, parses one
// snippet, and releases the parser.
func ParseBlock(source []byte) (*ast.Block, error) {
	p, err := NewSnippetParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseBlock(source)
}

func wrapSnippet(source []byte) []byte {
	trimmed := strings.TrimSpace(string(source))
	if strings.HasPrefix(trimmed, "{") {
		return []byte("fn __snippet__() " + trimmed)
	}
	return []byte("fn __snippet__() {\n" + trimmed + "\n}")
}

func snippetBody(root *sitter.Node) *sitter.Node {
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child != nil && child.Kind() == "function_item" {
			return child.ChildByFieldName("body")
		}
	}
	return nil
}

func convertStatement(node *sitter.Node, source []byte) ast.Statement {
	switch node.Kind() {
	case "let_declaration":
		return convertLetDeclaration(node, source)
	case "expression_statement":
		expr := firstNamedChild(node)
		if expr == nil {
			return unsupported(node, source)
		}
		return ast.NewExpressionStatement(convertExpression(expr, source))
	default:
		return unsupported(node, source)
	}
}

func convertLetDeclaration(node *sitter.Node, source []byte) ast.Statement {
	pattern := node.ChildByFieldName("pattern")
	if pattern == nil || pattern.Kind() != "identifier" {
		// Only a single bound name is supported; other patterns stay
		// unsupported and fail at evaluation time.
		return unsupported(node, source)
	}
	if node.ChildByFieldName("type") != nil || node.ChildByFieldName("alternative") != nil {
		return unsupported(node, source)
	}

	name := ast.NewIdentifier(sliceContent(pattern, source))

	var init ast.Expression
	if value := node.ChildByFieldName("value"); value != nil {
		init = convertExpression(value, source)
	}

	return ast.NewLetStatement(name, hasMutableSpecifier(node), init)
}

func convertExpression(node *sitter.Node, source []byte) ast.Expression {
	switch node.Kind() {
	case "integer_literal":
		text := sliceContent(node, source)
		value, ok := new(big.Int).SetString(strings.ReplaceAll(text, "_", ""), 0)
		if !ok {
			return unsupported(node, source)
		}
		return ast.NewIntegerLiteral(text, value)
	case "identifier":
		return ast.NewIdentifier(sliceContent(node, source))
	case "reference_expression":
		operand := node.ChildByFieldName("value")
		if operand == nil {
			return unsupported(node, source)
		}
		return ast.NewReferenceExpression(convertExpression(operand, source), hasMutableSpecifier(node))
	case "unary_expression":
		if operatorText(node, source) != "*" {
			return unsupported(node, source)
		}
		operand := firstNamedChild(node)
		if operand == nil {
			return unsupported(node, source)
		}
		return ast.NewDereferenceExpression(convertExpression(operand, source))
	case "assignment_expression":
		left := node.ChildByFieldName("left")
		right := node.ChildByFieldName("right")
		if left == nil || right == nil {
			return unsupported(node, source)
		}
		return ast.NewAssignmentExpression(convertExpression(left, source), convertExpression(right, source))
	default:
		return unsupported(node, source)
	}
}

func unsupported(node *sitter.Node, source []byte) *ast.UnsupportedNode {
	return ast.NewUnsupportedNode(node.Kind(), sliceContent(node, source))
}
