// Package rule contains the logical rewrite rules. Each rule is a pure
// function from a plan node to an optional replacement: it either returns
// a new subtree or reports "not applicable", and it never mutates its
// input. Rules are registered in an ordered list the engine walks; order
// can matter when rules overlap.
package rule

import "github.com/leengari/relopt/internal/plan"

// Rule is one rewrite. Rewrite inspects node and returns the replacement
// subtree with changed=true, or (node, false, nil) when the pattern or a
// legality check does not hold. A failed match is a normal outcome, not
// an error; the error return is reserved for malformed trees.
type Rule interface {
	// Name identifies the rule in logs and traces
	Name() string

	// Rewrite attempts the rewrite at node
	Rewrite(node plan.Node) (plan.Node, bool, error)
}

// All returns the rule list in application order
func All() []Rule {
	return []Rule{
		&FilterTranspose{},
	}
}
