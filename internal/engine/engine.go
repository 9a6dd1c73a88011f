// Package engine drives rule application over a plan tree: bottom-up
// traversal, re-matching after every successful rewrite, until a full
// pass changes nothing or the pass bound is hit. Splicing a replacement
// subtree is a single reference swap at the parent, so concurrent
// matching over disjoint subtrees needs no locking; this driver keeps
// one writer per tree.
package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/leengari/relopt/internal/plan"
	"github.com/leengari/relopt/internal/rule"
)

// DefaultMaxPasses bounds fixpoint iteration so a misbehaving rule set
// cannot loop forever
const DefaultMaxPasses = 10

// Engine applies an ordered rule list to plan trees
type Engine struct {
	rules     []rule.Rule
	maxPasses int
	logger    *slog.Logger
}

// New creates an engine over the given rules
func New(rules []rule.Rule) *Engine {
	return &Engine{
		rules:     rules,
		maxPasses: DefaultMaxPasses,
		logger:    slog.Default(),
	}
}

// WithMaxPasses overrides the fixpoint iteration bound
func (e *Engine) WithMaxPasses(n int) *Engine {
	e.maxPasses = n
	return e
}

// WithLogger overrides the engine's logger
func (e *Engine) WithLogger(logger *slog.Logger) *Engine {
	e.logger = logger
	return e
}

// Optimize rewrites root to fixpoint and returns the final tree.
// The input tree is never mutated; unchanged subtrees are shared between
// input and output.
func (e *Engine) Optimize(root plan.Node) (plan.Node, error) {
	log := e.logger.With(slog.String("run_id", uuid.NewString()))
	log.Debug("optimization started",
		slog.Int("nodes", plan.CountNodes(root)),
		slog.Int("rules", len(e.rules)),
	)

	passes := 0
	for ; passes < e.maxPasses; passes++ {
		newRoot, changed, err := e.optimizeNode(root, log)
		if err != nil {
			return nil, err
		}
		root = newRoot
		if !changed {
			break
		}
	}

	log.Debug("optimization finished",
		slog.Int("passes", passes),
		slog.Int("nodes", plan.CountNodes(root)),
	)
	return root, nil
}

// optimizeNode rewrites the subtree at node, children first, then tries
// every rule at the (possibly rebuilt) node itself.
func (e *Engine) optimizeNode(node plan.Node, log *slog.Logger) (plan.Node, bool, error) {
	changedAny := false

	for i, child := range node.Children() {
		newChild, changed, err := e.optimizeNode(child, log)
		if err != nil {
			return nil, false, err
		}
		if !changed {
			continue
		}
		rebuilt, err := plan.ReplaceChild(node, i, newChild)
		if err != nil {
			return nil, false, err
		}
		node = rebuilt
		changedAny = true
	}

	for _, r := range e.rules {
		out, changed, err := r.Rewrite(node)
		if err != nil {
			return nil, false, err
		}
		if changed {
			log.Debug("rule fired",
				slog.String("rule", r.Name()),
				slog.String("node", node.NodeType()),
			)
			node = out
			changedAny = true
		}
	}

	return node, changedAny, nil
}
