package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/relopt/internal/data"
	"github.com/leengari/relopt/internal/engine"
	"github.com/leengari/relopt/internal/exec"
	"github.com/leengari/relopt/internal/expr"
	"github.com/leengari/relopt/internal/hints"
	"github.com/leengari/relopt/internal/logging"
	"github.com/leengari/relopt/internal/plan"
	"github.com/leengari/relopt/internal/planner"
	"github.com/leengari/relopt/internal/rule"
	"github.com/leengari/relopt/internal/schema"
)

func main() {
	logger, closeFn := logging.SetupLogger()
	defer closeFn()
	slog.SetDefault(logger)

	fatal := func(what string, err error) {
		slog.Error("demo failed", slog.String("step", what), slog.String("error", err.Error()))
		closeFn()
		os.Exit(1)
	}

	slog.Info("Starting plan optimizer demo...")

	// L(a INT, b INT) anti-joined with R(e INT) on b = e, with a filter
	// a > 10 sitting between the join and L.
	left := plan.NewScan("l", schema.Schema{
		{Name: "a", Type: schema.TypeInt},
		{Name: "b", Type: schema.TypeInt},
	})
	right := plan.NewScan("r", schema.Schema{
		{Name: "e", Type: schema.TypeInt},
	})

	filter, err := plan.NewFilter(expr.Bin(expr.OpGt, expr.Col(0), expr.Int(10)), left)
	if err != nil {
		fatal("building filter", err)
	}
	root, err := plan.NewJoin(plan.AntiJoin, expr.Bin(expr.OpEq, expr.Col(1), expr.Col(2)), filter, right)
	if err != nil {
		fatal("building join", err)
	}

	// Statistics for the base relations. Rewrites share the scan nodes,
	// so these records stay valid for the optimized tree too.
	hs := hints.NewSet()
	if err := hs.For(left).SetKeyCardinality(1000); err != nil {
		fatal("setting hints", err)
	}
	if err := hs.For(left).SetAvgValuesPerKey(3); err != nil {
		fatal("setting hints", err)
	}
	if err := hs.For(right).SetKeyCardinality(50); err != nil {
		fatal("setting hints", err)
	}

	optimized, err := engine.New(rule.All()).Optimize(root)
	if err != nil {
		fatal("optimizing", err)
	}

	fmt.Println("--- before ---")
	fmt.Print(plan.PrintTree(root))
	fmt.Printf("cost estimate: %.0f\n", planner.TreeCost(root, hs))
	fmt.Println("--- after ---")
	fmt.Print(plan.PrintTree(optimized))
	fmt.Printf("cost estimate: %.0f\n", planner.TreeCost(optimized, hs))

	cat := exec.Catalog{
		"l": {
			{data.NewInt(5), data.NewInt(1)},
			{data.NewInt(20), data.NewInt(2)},
			{data.NewInt(20), data.NewInt(3)},
		},
		"r": {
			{data.NewInt(2)},
		},
	}

	before, err := exec.Run(root, cat)
	if err != nil {
		fatal("running original plan", err)
	}
	after, err := exec.Run(optimized, cat)
	if err != nil {
		fatal("running optimized plan", err)
	}

	fmt.Println("--- results ---")
	for _, row := range after {
		fmt.Println(row.Key())
	}

	if !sameRows(before, after) {
		slog.Error("optimized plan diverged from original",
			slog.Int("before_rows", len(before)),
			slog.Int("after_rows", len(after)),
		)
		closeFn()
		os.Exit(1)
	}
	slog.Info("plans agree", slog.Int("rows", len(after)))
}

// sameRows compares two results as multisets
func sameRows(a, b []data.Row) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, row := range a {
		counts[row.Key()]++
	}
	for _, row := range b {
		counts[row.Key()]--
		if counts[row.Key()] < 0 {
			return false
		}
	}
	return true
}
