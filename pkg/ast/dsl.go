package ast

import "math/big"

// Short constructors for building trees by hand in tests.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	v := big.NewInt(value)
	return NewIntegerLiteral(v.String(), v)
}

func Ref(name string) *ReferenceExpression {
	return NewReferenceExpression(ID(name), false)
}

func RefExpr(operand Expression) *ReferenceExpression {
	return NewReferenceExpression(operand, false)
}

func Deref(operand Expression) *DereferenceExpression {
	return NewDereferenceExpression(operand)
}

func Assign(left, right Expression) *AssignmentExpression {
	return NewAssignmentExpression(left, right)
}

func Let(name string, init Expression) *LetStatement {
	return NewLetStatement(ID(name), false, init)
}

func LetMut(name string, init Expression) *LetStatement {
	return NewLetStatement(ID(name), true, init)
}

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}
