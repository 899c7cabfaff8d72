package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindUnit Kind = iota
	KindLiteral
	KindReference
	KindUndefined
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindLiteral:
		return "literal"
	case KindReference:
		return "reference"
	case KindUndefined:
		return "undefined"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. String returns the
// diagnostic rendering used by Environment.Render.
type Value interface {
	Kind() Kind
	String() string
}

// UnitValue is the result of an assignment or any expression with no
// meaningful result.
type UnitValue struct{}

func (UnitValue) Kind() Kind     { return KindUnit }
func (UnitValue) String() string { return "()" }

// LiteralValue holds an integer literal in its source textual form.
type LiteralValue struct {
	Text string
}

func (v LiteralValue) Kind() Kind     { return KindLiteral }
func (v LiteralValue) String() string { return v.Text }

// ReferenceValue names another place. It never snapshots the referent;
// dereferencing re-reads the place at the moment of access.
type ReferenceValue struct {
	Place string
}

func (v ReferenceValue) Kind() Kind     { return KindReference }
func (v ReferenceValue) String() string { return "&" + v.Place }

// UndefinedValue marks a declared name that has no initializer yet. Reading
// it is an error even though the name exists in the store.
type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind     { return KindUndefined }
func (UndefinedValue) String() string { return "undefined" }
