package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leengari/relopt/internal/expr"
	"github.com/leengari/relopt/internal/plan"
	"github.com/leengari/relopt/internal/rule"
	"github.com/leengari/relopt/internal/schema"
)

func buildAntiOverFilter(t *testing.T) (*plan.Join, *plan.Scan, *plan.Scan) {
	t.Helper()
	left := plan.NewScan("l", schema.Schema{
		{Name: "a", Type: schema.TypeInt},
		{Name: "b", Type: schema.TypeInt},
	})
	right := plan.NewScan("r", schema.Schema{
		{Name: "e", Type: schema.TypeInt},
	})
	filter, err := plan.NewFilter(expr.Bin(expr.OpGt, expr.Col(0), expr.Int(10)), left)
	require.NoError(t, err)
	join, err := plan.NewJoin(plan.AntiJoin, expr.Bin(expr.OpEq, expr.Col(1), expr.Col(2)), filter, right)
	require.NoError(t, err)
	return join, left, right
}

func TestOptimizeToFixpoint(t *testing.T) {
	root, left, right := buildAntiOverFilter(t)

	out, err := New(rule.All()).Optimize(root)
	require.NoError(t, err)

	filter, ok := out.(*plan.Filter)
	require.True(t, ok, "expected the filter above the join after optimization")
	join, ok := filter.Input.(*plan.Join)
	require.True(t, ok)
	require.Same(t, plan.Node(left), join.Left)
	require.Same(t, plan.Node(right), join.Right)

	// Input tree untouched
	require.IsType(t, &plan.Filter{}, root.Left)
}

func TestOptimizeNested(t *testing.T) {
	// The matchable join sits under another filter; the engine must find
	// it below the root and splice the replacement in.
	inner, _, _ := buildAntiOverFilter(t)
	top, err := plan.NewFilter(expr.Bin(expr.OpLt, expr.Col(1), expr.Int(100)), inner)
	require.NoError(t, err)

	out, err := New(rule.All()).Optimize(top)
	require.NoError(t, err)

	outer, ok := out.(*plan.Filter)
	require.True(t, ok)
	pushed, ok := outer.Input.(*plan.Filter)
	require.True(t, ok, "the transposed filter should now sit directly below the top filter")
	require.IsType(t, &plan.Join{}, pushed.Input)
}

func TestOptimizeNoMatchReturnsInput(t *testing.T) {
	left := plan.NewScan("l", schema.Schema{{Name: "a", Type: schema.TypeInt}})
	out, err := New(rule.All()).Optimize(left)
	require.NoError(t, err)
	require.Same(t, plan.Node(left), out)
}

type loopRule struct{ fired int }

func (r *loopRule) Name() string { return "loop_forever" }

// Rewrite always reports a change without changing anything, simulating
// a rule set that never reaches fixpoint
func (r *loopRule) Rewrite(node plan.Node) (plan.Node, bool, error) {
	r.fired++
	return node, true, nil
}

func TestPassBound(t *testing.T) {
	left := plan.NewScan("l", schema.Schema{{Name: "a", Type: schema.TypeInt}})
	lr := &loopRule{}

	_, err := New([]rule.Rule{lr}).WithMaxPasses(3).Optimize(left)
	require.NoError(t, err)
	require.Equal(t, 3, lr.fired, "iteration bound must stop a non-terminating rule set")
}
