package expr

import (
	"fmt"

	"github.com/leengari/relopt/internal/data"
)

// Expr is the base interface for all predicate expression nodes.
// Expressions are immutable; transformations build new trees.
type Expr interface {
	// String renders the expression for plan printing
	String() string

	exprNode()
}

// ColumnRef references a column by position in the enclosing operator's
// input schema. Positional resolution avoids name ambiguity after rewrites.
type ColumnRef struct {
	Pos int
}

func (c *ColumnRef) exprNode() {}

func (c *ColumnRef) String() string {
	return fmt.Sprintf("@%d", c.Pos)
}

// Literal is a constant value
type Literal struct {
	Value data.Datum
}

func (l *Literal) exprNode() {}

func (l *Literal) String() string {
	return l.Value.String()
}

// BinaryOp identifies a binary operator
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// String returns the SQL-ish symbol for the operator
func (op BinaryOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// IsComparison reports whether the operator compares two values
func (op BinaryOp) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

// IsLogic reports whether the operator is a boolean connective
func (op BinaryOp) IsLogic() bool {
	return op == OpAnd || op == OpOr
}

// IsArithmetic reports whether the operator is numeric
func (op BinaryOp) IsArithmetic() bool {
	return op >= OpAdd && op <= OpDiv
}

// BinaryExpr applies a binary operator to two sub-expressions
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) exprNode() {}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryOp identifies a unary operator
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
)

// String returns the symbol for the operator
func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "NOT"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// UnaryExpr applies a unary operator to one sub-expression
type UnaryExpr struct {
	Op    UnaryOp
	Input Expr
}

func (u *UnaryExpr) exprNode() {}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("%s %s", u.Op, u.Input)
}

// Col is shorthand for a column reference
func Col(pos int) *ColumnRef {
	return &ColumnRef{Pos: pos}
}

// Int is shorthand for an integer literal
func Int(v int64) *Literal {
	return &Literal{Value: data.NewInt(v)}
}

// Str is shorthand for a string literal
func Str(v string) *Literal {
	return &Literal{Value: data.NewString(v)}
}

// Bool is shorthand for a boolean literal
func Bool(v bool) *Literal {
	return &Literal{Value: data.NewBool(v)}
}

// Bin is shorthand for a binary expression
func Bin(op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}
