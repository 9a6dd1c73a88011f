package plan

import (
	"fmt"

	"github.com/leengari/relopt/internal/expr"
	"github.com/leengari/relopt/internal/schema"
)

// Node is the base interface for all logical plan nodes. Nodes are
// immutable once constructed: a rewrite builds a new node and shares the
// unaffected children by reference, so the same subtree may safely sit
// under several in-flight rewrite candidates at once.
type Node interface {
	// Children returns child nodes for tree walking
	Children() []Node

	// Schema returns the operator's output schema
	Schema() schema.Schema

	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string
}

// Scan reads a base relation (leaf node)
type Scan struct {
	Relation string
	Cols     schema.Schema
}

// NewScan creates a scan over the named relation
func NewScan(relation string, cols schema.Schema) *Scan {
	return &Scan{Relation: relation, Cols: cols}
}

func (n *Scan) Children() []Node {
	return nil // Leaf node has no children
}

func (n *Scan) Schema() schema.Schema {
	return n.Cols
}

func (n *Scan) NodeType() string {
	return "SCAN"
}

// Filter keeps the input rows for which Predicate evaluates to TRUE
type Filter struct {
	Predicate expr.Expr
	Input     Node
}

// NewFilter validates that pred is a boolean expression over child's
// schema and builds the filter node.
func NewFilter(pred expr.Expr, child Node) (*Filter, error) {
	t, err := expr.TypeOf(pred, child.Schema())
	if err != nil {
		return nil, newSchemaMismatch("FILTER", "invalid predicate %s: %v", pred, err)
	}
	if t != schema.TypeBool {
		return nil, newSchemaMismatch("FILTER", "predicate %s has type %s, want BOOL", pred, t)
	}
	return &Filter{Predicate: pred, Input: child}, nil
}

func (n *Filter) Children() []Node {
	return []Node{n.Input}
}

func (n *Filter) Schema() schema.Schema {
	return n.Input.Schema()
}

func (n *Filter) NodeType() string {
	return "FILTER"
}

// Project computes one output column per expression over the input
type Project struct {
	Exprs []expr.Expr
	Input Node
}

// NewProject validates every projection expression against child's schema
func NewProject(exprs []expr.Expr, child Node) (*Project, error) {
	if len(exprs) == 0 {
		return nil, newSchemaMismatch("PROJECT", "projection needs at least one expression")
	}
	for _, e := range exprs {
		if _, err := expr.TypeOf(e, child.Schema()); err != nil {
			return nil, newSchemaMismatch("PROJECT", "invalid expression %s: %v", e, err)
		}
	}
	return &Project{Exprs: exprs, Input: child}, nil
}

func (n *Project) Children() []Node {
	return []Node{n.Input}
}

func (n *Project) Schema() schema.Schema {
	in := n.Input.Schema()
	out := make(schema.Schema, len(n.Exprs))
	for i, e := range n.Exprs {
		if ref, ok := e.(*expr.ColumnRef); ok && ref.Pos >= 0 && ref.Pos < len(in) {
			out[i] = in[ref.Pos]
			continue
		}
		t, _ := expr.TypeOf(e, in)
		out[i] = schema.Column{
			Name:     fmt.Sprintf("col%d", i),
			Type:     t,
			Nullable: expr.IsNullProducing(e, in),
		}
	}
	return out
}

func (n *Project) NodeType() string {
	return "PROJECT"
}

// JoinKind identifies the join variant
type JoinKind int

const (
	// InnerJoin pairs every matching left and right row
	InnerJoin JoinKind = iota
	// SemiJoin keeps left rows with at least one matching right row;
	// right columns are existence-tested, never projected
	SemiJoin
	// AntiJoin keeps left rows with no matching right row
	AntiJoin
)

// String returns the string representation of the join kind
func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "INNER JOIN"
	case SemiJoin:
		return "SEMI JOIN"
	case AntiJoin:
		return "ANTI JOIN"
	default:
		return "UNKNOWN JOIN"
	}
}

// Join combines two inputs under a join condition. The condition is
// expressed over the concatenated schema: left columns first, right
// columns shifted up by the left child's arity.
type Join struct {
	Kind      JoinKind
	Condition expr.Expr
	Left      Node
	Right     Node
}

// NewJoin validates the condition over the combined input schema.
// For Semi and Anti kinds the output schema is exactly the left child's.
func NewJoin(kind JoinKind, cond expr.Expr, left, right Node) (*Join, error) {
	combined := left.Schema().Concat(right.Schema())
	t, err := expr.TypeOf(cond, combined)
	if err != nil {
		return nil, newSchemaMismatch("JOIN", "invalid condition %s: %v", cond, err)
	}
	if t != schema.TypeBool {
		return nil, newSchemaMismatch("JOIN", "condition %s has type %s, want BOOL", cond, t)
	}
	return &Join{Kind: kind, Condition: cond, Left: left, Right: right}, nil
}

func (n *Join) Children() []Node {
	return []Node{n.Left, n.Right}
}

func (n *Join) Schema() schema.Schema {
	switch n.Kind {
	case SemiJoin, AntiJoin:
		return n.Left.Schema()
	default:
		return n.Left.Schema().Concat(n.Right.Schema())
	}
}

func (n *Join) NodeType() string {
	return n.Kind.String()
}
