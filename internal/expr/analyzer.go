package expr

import "github.com/leengari/relopt/internal/schema"

// Columns collects the positions of every column reference in e
func Columns(e Expr) ColSet {
	s := NewColSet()
	walkRefs(e, func(c *ColumnRef) {
		s = s.Add(c.Pos)
	})
	return s
}

// ReferencesOnly reports whether every column reference in e is a member
// of allowed. Literals trivially satisfy it.
func ReferencesOnly(e Expr, allowed ColSet) bool {
	ok := true
	walkRefs(e, func(c *ColumnRef) {
		if !allowed.Contains(c.Pos) {
			ok = false
		}
	})
	return ok
}

// IsNullProducing reports whether e can evaluate to NULL under the column
// nullability declared by sch. The check is a conservative static
// approximation: a column reference out of sch's range counts as nullable.
func IsNullProducing(e Expr, sch schema.Schema) bool {
	switch t := e.(type) {
	case *ColumnRef:
		if t.Pos < 0 || t.Pos >= len(sch) {
			return true
		}
		return sch[t.Pos].Nullable
	case *Literal:
		return t.Value.Null
	case *BinaryExpr:
		// Comparisons, arithmetic and Kleene connectives all propagate
		// NULL operands, so either side suffices.
		return IsNullProducing(t.Left, sch) || IsNullProducing(t.Right, sch)
	case *UnaryExpr:
		return IsNullProducing(t.Input, sch)
	}
	return false
}

// ShiftColumns returns a copy of e with every column reference's position
// increased by offset. Shifting by offset and then by -offset restores the
// original expression, so repeated rule firings stay idempotent on
// unrelated subtrees.
func ShiftColumns(e Expr, offset int) Expr {
	if offset == 0 {
		return e
	}
	return RemapColumns(e, func(pos int) int {
		return pos + offset
	})
}

// RemapColumns returns a copy of e with every column reference's position
// rewritten through fn. Subtrees without references are shared, not copied.
func RemapColumns(e Expr, fn func(int) int) Expr {
	switch t := e.(type) {
	case *ColumnRef:
		np := fn(t.Pos)
		if np == t.Pos {
			return t
		}
		return &ColumnRef{Pos: np}
	case *Literal:
		return t
	case *BinaryExpr:
		left := RemapColumns(t.Left, fn)
		right := RemapColumns(t.Right, fn)
		if left == t.Left && right == t.Right {
			return t
		}
		return &BinaryExpr{Op: t.Op, Left: left, Right: right}
	case *UnaryExpr:
		input := RemapColumns(t.Input, fn)
		if input == t.Input {
			return t
		}
		return &UnaryExpr{Op: t.Op, Input: input}
	}
	return e
}

// Equal reports whether two expressions are structurally identical
func Equal(a, b Expr) bool {
	switch ta := a.(type) {
	case *ColumnRef:
		tb, ok := b.(*ColumnRef)
		return ok && ta.Pos == tb.Pos
	case *Literal:
		tb, ok := b.(*Literal)
		if !ok {
			return false
		}
		if ta.Value.Null || tb.Value.Null {
			return ta.Value.Null == tb.Value.Null && ta.Value.Type == tb.Value.Type
		}
		return ta.Value.Equal(tb.Value)
	case *BinaryExpr:
		tb, ok := b.(*BinaryExpr)
		return ok && ta.Op == tb.Op && Equal(ta.Left, tb.Left) && Equal(ta.Right, tb.Right)
	case *UnaryExpr:
		tb, ok := b.(*UnaryExpr)
		return ok && ta.Op == tb.Op && Equal(ta.Input, tb.Input)
	}
	return false
}

func walkRefs(e Expr, fn func(*ColumnRef)) {
	switch t := e.(type) {
	case *ColumnRef:
		fn(t)
	case *BinaryExpr:
		walkRefs(t.Left, fn)
		walkRefs(t.Right, fn)
	case *UnaryExpr:
		walkRefs(t.Input, fn)
	}
}
