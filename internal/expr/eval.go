package expr

import (
	"github.com/leengari/relopt/internal/data"
	"github.com/leengari/relopt/internal/schema"
)

// Eval evaluates e against one input row under three-valued logic:
// comparisons and arithmetic over a NULL operand yield NULL, and the
// boolean connectives follow Kleene semantics (FALSE AND NULL is FALSE,
// TRUE OR NULL is TRUE, everything else with a NULL operand is NULL).
// The expression is assumed to have passed TypeOf over the row's schema.
func Eval(e Expr, row data.Row) data.Datum {
	switch t := e.(type) {
	case *ColumnRef:
		if t.Pos < 0 || t.Pos >= len(row) {
			return data.NewNull(schema.TypeBool)
		}
		return row[t.Pos]
	case *Literal:
		return t.Value
	case *BinaryExpr:
		return evalBinary(t, row)
	case *UnaryExpr:
		return evalUnary(t, row)
	}
	return data.NewNull(schema.TypeBool)
}

// IsTrue reports whether e evaluates to TRUE for row. NULL and FALSE both
// fail the test, which is exactly how a Filter treats its predicate.
func IsTrue(e Expr, row data.Row) bool {
	v := Eval(e, row)
	return !v.Null && v.Type == schema.TypeBool && v.B
}

func evalBinary(b *BinaryExpr, row data.Row) data.Datum {
	left := Eval(b.Left, row)
	right := Eval(b.Right, row)

	if b.Op.IsLogic() {
		return evalLogic(b.Op, left, right)
	}

	if left.Null || right.Null {
		if b.Op.IsArithmetic() {
			return data.NewNull(schema.TypeInt)
		}
		return data.NewNull(schema.TypeBool)
	}

	switch {
	case b.Op.IsComparison():
		return data.NewBool(compare(b.Op, left, right))
	case b.Op.IsArithmetic():
		return arith(b.Op, left, right)
	}
	return data.NewNull(schema.TypeBool)
}

func evalLogic(op BinaryOp, left, right data.Datum) data.Datum {
	lv := truth(left)
	rv := truth(right)
	switch op {
	case OpAnd:
		if lv == triFalse || rv == triFalse {
			return data.NewBool(false)
		}
		if lv == triTrue && rv == triTrue {
			return data.NewBool(true)
		}
	case OpOr:
		if lv == triTrue || rv == triTrue {
			return data.NewBool(true)
		}
		if lv == triFalse && rv == triFalse {
			return data.NewBool(false)
		}
	}
	return data.NewNull(schema.TypeBool)
}

func evalUnary(u *UnaryExpr, row data.Row) data.Datum {
	v := Eval(u.Input, row)
	switch u.Op {
	case OpNot:
		if v.Null {
			return data.NewNull(schema.TypeBool)
		}
		return data.NewBool(!v.B)
	case OpNeg:
		if v.Null {
			return data.NewNull(schema.TypeInt)
		}
		return data.NewInt(-v.I)
	}
	return data.NewNull(schema.TypeBool)
}

func compare(op BinaryOp, left, right data.Datum) bool {
	var cmp int
	switch left.Type {
	case schema.TypeInt:
		switch {
		case left.I < right.I:
			cmp = -1
		case left.I > right.I:
			cmp = 1
		}
	case schema.TypeString:
		switch {
		case left.S < right.S:
			cmp = -1
		case left.S > right.S:
			cmp = 1
		}
	case schema.TypeBool:
		if left.B != right.B {
			cmp = 1
		}
	}
	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

func arith(op BinaryOp, left, right data.Datum) data.Datum {
	switch op {
	case OpAdd:
		return data.NewInt(left.I + right.I)
	case OpSub:
		return data.NewInt(left.I - right.I)
	case OpMul:
		return data.NewInt(left.I * right.I)
	case OpDiv:
		// Division by zero yields NULL rather than a runtime fault
		if right.I == 0 {
			return data.NewNull(schema.TypeInt)
		}
		return data.NewInt(left.I / right.I)
	}
	return data.NewNull(schema.TypeInt)
}

type tri int

const (
	triNull tri = iota
	triTrue
	triFalse
)

func truth(v data.Datum) tri {
	if v.Null {
		return triNull
	}
	if v.B {
		return triTrue
	}
	return triFalse
}
