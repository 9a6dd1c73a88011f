// Package planner holds the cost estimation layer that sits next to the
// rewrite rules: it reads the advisory hint records attached to plan
// nodes and turns them into per-node row and byte estimates. Rules never
// consult these numbers to decide legality; they exist to rank
// otherwise-legal plans.
package planner

import (
	"github.com/leengari/relopt/internal/hints"
	"github.com/leengari/relopt/internal/plan"
)

// Fallbacks used when an operator carries no hints. Absent hints must
// never change correctness, only estimate quality.
const (
	defaultScanRows       = 1000.0
	defaultBytesPerRecord = 100.0
	defaultJoinMatchRate  = 0.5
)

// Estimate is the cost model's view of one operator's output
type Estimate struct {
	Rows  float64
	Bytes float64
}

// EstimateNode computes the output estimate for node, recursing into its
// children. hs may be nil, in which case every number is a fallback.
func EstimateNode(node plan.Node, hs *hints.Set) Estimate {
	var h *hints.Hints
	if hs != nil {
		h, _ = hs.Lookup(node)
	}

	var rows float64
	switch n := node.(type) {
	case *plan.Scan:
		rows = defaultScanRows
		if h != nil {
			if card, ok := h.KeyCardinality(); ok {
				rows = float64(card)
				if avg, ok := h.AvgValuesPerKey(); ok {
					rows *= avg
				}
			}
		}

	case *plan.Filter:
		input := EstimateNode(n.Input, hs)
		factor := 1.0
		if h != nil {
			factor = h.AvgRecordsEmittedPerCall()
		}
		rows = input.Rows * factor

	case *plan.Project:
		rows = EstimateNode(n.Input, hs).Rows

	case *plan.Join:
		left := EstimateNode(n.Left, hs)
		right := EstimateNode(n.Right, hs)
		switch n.Kind {
		case plan.SemiJoin, plan.AntiJoin:
			// Existence tests emit at most every left row
			rows = left.Rows * defaultJoinMatchRate
		default:
			rows = left.Rows * right.Rows * defaultJoinMatchRate
		}

	default:
		rows = defaultScanRows
	}

	bytes := defaultBytesPerRecord
	if h != nil {
		if b, ok := h.AvgBytesPerRecord(); ok {
			bytes = b
		}
	}
	return Estimate{Rows: rows, Bytes: rows * bytes}
}

// TreeCost sums the row estimates of every operator in the tree. It is a
// crude "total tuples moved" metric, enough to compare the same plan
// before and after a rewrite.
func TreeCost(root plan.Node, hs *hints.Set) float64 {
	total := 0.0
	_ = plan.WalkTree(root, func(n plan.Node) error {
		total += EstimateNode(n, hs).Rows
		return nil
	})
	return total
}
