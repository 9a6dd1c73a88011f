package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leengari/relopt/internal/expr"
	"github.com/leengari/relopt/internal/hints"
	"github.com/leengari/relopt/internal/plan"
	"github.com/leengari/relopt/internal/schema"
)

func TestEstimateScanFromHints(t *testing.T) {
	scan := plan.NewScan("t", schema.Schema{{Name: "a", Type: schema.TypeInt}})

	hs := hints.NewSet()
	require.NoError(t, hs.For(scan).SetKeyCardinality(100))
	require.NoError(t, hs.For(scan).SetAvgValuesPerKey(3))
	require.NoError(t, hs.For(scan).SetAvgBytesPerRecord(8))

	est := EstimateNode(scan, hs)
	require.Equal(t, 300.0, est.Rows)
	require.Equal(t, 2400.0, est.Bytes)
}

func TestEstimateWithoutHints(t *testing.T) {
	scan := plan.NewScan("t", schema.Schema{{Name: "a", Type: schema.TypeInt}})

	// Missing hints fall back to heuristics; nil sets are fine too
	est := EstimateNode(scan, nil)
	require.Equal(t, defaultScanRows, est.Rows)

	est = EstimateNode(scan, hints.NewSet())
	require.Equal(t, defaultScanRows, est.Rows)
}

func TestEstimateFilterEmissionFactor(t *testing.T) {
	scan := plan.NewScan("t", schema.Schema{{Name: "a", Type: schema.TypeInt}})
	filter, err := plan.NewFilter(expr.Bin(expr.OpGt, expr.Col(0), expr.Int(10)), scan)
	require.NoError(t, err)

	hs := hints.NewSet()
	require.NoError(t, hs.For(scan).SetKeyCardinality(1000))
	require.NoError(t, hs.For(scan).SetAvgValuesPerKey(1))
	require.NoError(t, hs.For(filter).SetAvgRecordsEmittedPerCall(0.1))

	est := EstimateNode(filter, hs)
	require.InDelta(t, 100.0, est.Rows, 1e-9)
}

func TestHintsRankAlternatives(t *testing.T) {
	// Two legal shapes of the same query: the filter below the anti-join
	// (A) or above it (B). Which one the cost model prefers depends on
	// the filter's emission hint; correctness never does.
	left := plan.NewScan("l", schema.Schema{
		{Name: "a", Type: schema.TypeInt},
		{Name: "b", Type: schema.TypeInt},
	})
	right := plan.NewScan("r", schema.Schema{{Name: "e", Type: schema.TypeInt}})

	pred := expr.Bin(expr.OpGt, expr.Col(0), expr.Int(10))
	cond := expr.Bin(expr.OpEq, expr.Col(1), expr.Col(2))

	filterA, err := plan.NewFilter(pred, left)
	require.NoError(t, err)
	planA, err := plan.NewJoin(plan.AntiJoin, cond, filterA, right)
	require.NoError(t, err)

	joinB, err := plan.NewJoin(plan.AntiJoin, cond, left, right)
	require.NoError(t, err)
	planB, err := plan.NewFilter(pred, joinB)
	require.NoError(t, err)

	hs := hints.NewSet()
	require.NoError(t, hs.For(left).SetKeyCardinality(10000))
	require.NoError(t, hs.For(left).SetAvgValuesPerKey(1))

	// Default emission factor 1.0: the anti-join halves the stream, so
	// running it first moves fewer tuples overall
	require.Less(t, TreeCost(planB, hs), TreeCost(planA, hs))

	// A highly selective filter flips the preference
	require.NoError(t, hs.For(filterA).SetAvgRecordsEmittedPerCall(0.01))
	require.NoError(t, hs.For(planB).SetAvgRecordsEmittedPerCall(0.01))
	require.Less(t, TreeCost(planA, hs), TreeCost(planB, hs))
}
