package rule

import (
	"github.com/leengari/relopt/internal/expr"
	"github.com/leengari/relopt/internal/plan"
)

// FilterTranspose transposes a semi- or anti-join with the filter on its
// left input, pushing the join down onto the filter's own input:
//
//	SEMI JOIN cond          FILTER pred
//	  FILTER pred     ->      SEMI JOIN cond
//	    L                       L
//	  R                         R
//
// A semi-join only gates the existence of a match, so a predicate over
// the left input's own columns commutes with it; rows failing the
// predicate can never reach the output in either order. The same holds
// for an anti-join: the predicate does not change which rows are tested
// for existence, and the join's own condition is left untouched.
//
// A projection of plain column references between the join and the
// filter is transparent scaffolding: the rule unwraps it, rewrites the
// join condition's positions down to the filter's input, and rewraps the
// projection on top of the result.
type FilterTranspose struct{}

// Match is the handle for one successful pattern match. The engine calls
// Match to probe a node cheaply and Apply to perform the rewrite.
type Match struct {
	join    *plan.Join
	project *plan.Project // nil when the filter sits directly below the join
	filter  *plan.Filter
}

// Name implements Rule
func (r *FilterTranspose) Name() string {
	return "semi_anti_join_filter_transpose"
}

// Rewrite implements Rule
func (r *FilterTranspose) Rewrite(node plan.Node) (plan.Node, bool, error) {
	m := r.Match(node)
	if m == nil {
		return node, false, nil
	}
	out, err := r.Apply(m)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// Match tests whether the rule applies at node. It returns nil both when
// the shape does not match and when a legality check fails; the caller
// cannot tell the two apart and does not need to.
func (r *FilterTranspose) Match(node plan.Node) *Match {
	join, ok := node.(*plan.Join)
	if !ok {
		return nil
	}
	if join.Kind != plan.SemiJoin && join.Kind != plan.AntiJoin {
		return nil
	}

	left := join.Left
	var project *plan.Project
	if p, ok := left.(*plan.Project); ok {
		// Only a pure column-reference projection is transparent;
		// computed columns would change the predicate's inputs.
		for _, e := range p.Exprs {
			if _, ok := e.(*expr.ColumnRef); !ok {
				return nil
			}
		}
		project = p
		left = p.Input
	}

	filter, ok := left.(*plan.Filter)
	if !ok {
		return nil
	}

	if !r.legal(join, filter) {
		return nil
	}
	return &Match{join: join, project: project, filter: filter}
}

// legal holds the correctness checks that go beyond the tree shape
func (r *FilterTranspose) legal(join *plan.Join, filter *plan.Filter) bool {
	// The predicate must touch only columns the filter's input produces.
	// A reference beyond that range would resolve into the join's right
	// side after the swap, which is not yet available at that point in
	// the rewritten tree.
	leftCols := expr.Prefix(filter.Input.Schema().Len())
	if !expr.ReferencesOnly(filter.Predicate, leftCols) {
		return false
	}

	// For an anti-join, refuse the conservative corner: a NULL-producing
	// predicate combined with a join condition that itself depends on
	// nullable inputs. Three-valued logic can then flip which left rows
	// the existence test excludes.
	if join.Kind == plan.AntiJoin {
		combined := join.Left.Schema().Concat(join.Right.Schema())
		if expr.IsNullProducing(filter.Predicate, filter.Input.Schema()) &&
			expr.IsNullProducing(join.Condition, combined) {
			return false
		}
	}
	return true
}

// Apply performs the rewrite for a prior successful Match. The join's
// kind and condition semantics are untouched; the filter's predicate is
// reused unchanged because the left input's schema prefix survives the
// swap intact.
func (r *FilterTranspose) Apply(m *Match) (plan.Node, error) {
	base := m.filter.Input
	cond := m.join.Condition

	if m.project != nil {
		// The condition was written against [project output ++ right];
		// below the projection it must read [base ++ right]. Left
		// positions map through the projection's references; right
		// positions shift by the arity difference.
		projWidth := len(m.project.Exprs)
		offset := base.Schema().Len() - projWidth
		cond = expr.RemapColumns(cond, func(pos int) int {
			if pos < projWidth {
				return m.project.Exprs[pos].(*expr.ColumnRef).Pos
			}
			return pos + offset
		})
	}

	join, err := plan.NewJoin(m.join.Kind, cond, base, m.join.Right)
	if err != nil {
		return nil, err
	}
	filter, err := plan.NewFilter(m.filter.Predicate, join)
	if err != nil {
		return nil, err
	}
	if m.project == nil {
		return filter, nil
	}
	return plan.NewProject(m.project.Exprs, filter)
}
