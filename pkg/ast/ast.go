package ast

import "math/big"

type NodeType string

const (
	NodeIdentifier            NodeType = "Identifier"
	NodeIntegerLiteral        NodeType = "IntegerLiteral"
	NodeReferenceExpression   NodeType = "ReferenceExpression"
	NodeDereferenceExpression NodeType = "DereferenceExpression"
	NodeAssignmentExpression  NodeType = "AssignmentExpression"
	NodeLetStatement          NodeType = "LetStatement"
	NodeExpressionStatement   NodeType = "ExpressionStatement"
	NodeBlock                 NodeType = "Block"
	NodeUnsupported           NodeType = "Unsupported"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Identifier names a place in the environment.

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// IntegerLiteral keeps the source token text alongside the parsed value so
// diagnostic rendering can reproduce the literal exactly as written.

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Text  string   `json:"text"`
	Value *big.Int `json:"value"`
}

func NewIntegerLiteral(text string, value *big.Int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Text: text, Value: value}
}

// ReferenceExpression is `&operand`. Evaluation only accepts an identifier
// operand; broader location expressions stay out of the subset.

type ReferenceExpression struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"operand"`
	Mutable bool       `json:"mutable,omitempty"`
}

func NewReferenceExpression(operand Expression, mutable bool) *ReferenceExpression {
	return &ReferenceExpression{nodeImpl: newNodeImpl(NodeReferenceExpression), Operand: operand, Mutable: mutable}
}

// DereferenceExpression is `*operand`.

type DereferenceExpression struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"operand"`
}

func NewDereferenceExpression(operand Expression) *DereferenceExpression {
	return &DereferenceExpression{nodeImpl: newNodeImpl(NodeDereferenceExpression), Operand: operand}
}

// AssignmentExpression is `left = right`; the left side is a location
// expression (an identifier or a dereference chain).

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func NewAssignmentExpression(left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Left: left, Right: right}
}

// LetStatement binds a single name, optionally initialized. A nil Init means
// the name is declared but left undefined.

type LetStatement struct {
	nodeImpl
	statementMarker

	Name    *Identifier `json:"name"`
	Mutable bool        `json:"mutable,omitempty"`
	Init    Expression  `json:"init,omitempty"`
}

func NewLetStatement(name *Identifier, mutable bool, init Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, Mutable: mutable, Init: init}
}

// ExpressionStatement evaluates an expression for its side effects.

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expr"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expr: expr}
}

// Block is an ordered statement sequence evaluated against one environment.

type Block struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// UnsupportedNode carries any construct outside the supported subset through
// the tree unchanged. The parser never rejects it; evaluation does.

type UnsupportedNode struct {
	nodeImpl
	expressionMarker
	statementMarker

	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

func NewUnsupportedNode(kind, text string) *UnsupportedNode {
	return &UnsupportedNode{nodeImpl: newNodeImpl(NodeUnsupported), Kind: kind, Text: text}
}
