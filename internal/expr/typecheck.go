package expr

import (
	"fmt"

	"github.com/leengari/relopt/internal/schema"
)

// TypeOf infers the result type of e over the given input schema.
// It fails if a column reference falls outside the schema or if an
// operator is applied to operands of the wrong type.
func TypeOf(e Expr, sch schema.Schema) (schema.DataType, error) {
	switch t := e.(type) {
	case *ColumnRef:
		if t.Pos < 0 || t.Pos >= len(sch) {
			return 0, fmt.Errorf("column @%d out of range for schema of %d columns", t.Pos, len(sch))
		}
		return sch[t.Pos].Type, nil
	case *Literal:
		return t.Value.Type, nil
	case *BinaryExpr:
		left, err := TypeOf(t.Left, sch)
		if err != nil {
			return 0, err
		}
		right, err := TypeOf(t.Right, sch)
		if err != nil {
			return 0, err
		}
		switch {
		case t.Op.IsComparison():
			if left != right {
				return 0, fmt.Errorf("cannot compare %s to %s in %s", left, right, t)
			}
			if left == schema.TypeBool && t.Op != OpEq && t.Op != OpNe {
				return 0, fmt.Errorf("operator %s not defined on BOOL in %s", t.Op, t)
			}
			return schema.TypeBool, nil
		case t.Op.IsLogic():
			if left != schema.TypeBool || right != schema.TypeBool {
				return 0, fmt.Errorf("operator %s requires BOOL operands in %s", t.Op, t)
			}
			return schema.TypeBool, nil
		case t.Op.IsArithmetic():
			if left != schema.TypeInt || right != schema.TypeInt {
				return 0, fmt.Errorf("operator %s requires INT operands in %s", t.Op, t)
			}
			return schema.TypeInt, nil
		default:
			return 0, fmt.Errorf("unknown binary operator %d", t.Op)
		}
	case *UnaryExpr:
		input, err := TypeOf(t.Input, sch)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case OpNot:
			if input != schema.TypeBool {
				return 0, fmt.Errorf("NOT requires a BOOL operand in %s", t)
			}
			return schema.TypeBool, nil
		case OpNeg:
			if input != schema.TypeInt {
				return 0, fmt.Errorf("negation requires an INT operand in %s", t)
			}
			return schema.TypeInt, nil
		default:
			return 0, fmt.Errorf("unknown unary operator %d", t.Op)
		}
	}
	return 0, fmt.Errorf("unknown expression %T", e)
}
