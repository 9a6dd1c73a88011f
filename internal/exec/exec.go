// Package exec is a small tuple-at-a-time interpreter for plan trees.
// It exists as a reference oracle: equivalence tests and the demo binary
// run a tree before and after rewriting and compare the outputs. It is
// deliberately naive (nested loops, no indexes) so its semantics stay
// easy to audit.
package exec

import (
	"fmt"

	"github.com/leengari/relopt/internal/data"
	"github.com/leengari/relopt/internal/expr"
	"github.com/leengari/relopt/internal/plan"
)

// Catalog maps relation names to their rows. Rows are positionally
// aligned with the scan's schema.
type Catalog map[string][]data.Row

// Run evaluates the plan tree against the catalog and returns the
// output rows in producer order.
func Run(node plan.Node, cat Catalog) ([]data.Row, error) {
	switch n := node.(type) {
	case *plan.Scan:
		rows, ok := cat[n.Relation]
		if !ok {
			return nil, fmt.Errorf("relation not found: %s", n.Relation)
		}
		return rows, nil

	case *plan.Filter:
		input, err := Run(n.Input, cat)
		if err != nil {
			return nil, err
		}
		out := make([]data.Row, 0, len(input))
		for _, row := range input {
			// NULL and FALSE both drop the row
			if expr.IsTrue(n.Predicate, row) {
				out = append(out, row)
			}
		}
		return out, nil

	case *plan.Project:
		input, err := Run(n.Input, cat)
		if err != nil {
			return nil, err
		}
		out := make([]data.Row, len(input))
		for i, row := range input {
			projected := make(data.Row, len(n.Exprs))
			for j, e := range n.Exprs {
				projected[j] = expr.Eval(e, row)
			}
			out[i] = projected
		}
		return out, nil

	case *plan.Join:
		return runJoin(n, cat)
	}
	return nil, fmt.Errorf("unknown node type %T", node)
}

func runJoin(n *plan.Join, cat Catalog) ([]data.Row, error) {
	left, err := Run(n.Left, cat)
	if err != nil {
		return nil, err
	}
	right, err := Run(n.Right, cat)
	if err != nil {
		return nil, err
	}

	var out []data.Row
	switch n.Kind {
	case plan.InnerJoin:
		for _, l := range left {
			for _, r := range right {
				joined := l.Concat(r)
				if expr.IsTrue(n.Condition, joined) {
					out = append(out, joined)
				}
			}
		}

	case plan.SemiJoin:
		for _, l := range left {
			if matchExists(n.Condition, l, right) {
				out = append(out, l)
			}
		}

	case plan.AntiJoin:
		// A NULL condition is not a match, so a right row with a NULL
		// key never excludes a left row. That is NOT EXISTS semantics,
		// not NOT IN semantics.
		for _, l := range left {
			if !matchExists(n.Condition, l, right) {
				out = append(out, l)
			}
		}

	default:
		return nil, fmt.Errorf("unsupported join kind %v", n.Kind)
	}
	return out, nil
}

func matchExists(cond expr.Expr, left data.Row, right []data.Row) bool {
	for _, r := range right {
		if expr.IsTrue(cond, left.Concat(r)) {
			return true
		}
	}
	return false
}
