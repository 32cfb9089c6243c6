package satisfy

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/implint/implint/expr"
)

// LeafValue records the truth value of one capability leaf.
type LeafValue struct {
	Leaf  expr.Leaf
	Value bool
}

// Result is the outcome of evaluating one assertion.
type Result struct {
	Value  bool
	Type   types.Type
	Leaves []LeafValue
}

// Note renders the per-leaf truth values for diagnostics, e.g.
// "io.Writer=true, fmt.Stringer=false".
func (r *Result) Note() string {
	if len(r.Leaves) == 0 {
		return ""
	}
	parts := make([]string, len(r.Leaves))
	for i, lv := range r.Leaves {
		parts[i] = fmt.Sprintf("%s=%t", lv.Leaf.String(), lv.Value)
	}
	return strings.Join(parts, ", ")
}

// Eval resolves the type-under-test and evaluates the expression tree
// against it. Operands are combined with two-valued boolean semantics and
// no short-circuiting: both sides of every operator are evaluated, so every
// leaf contributes a recorded truth value. Evaluation is atomic; the first
// resolution error aborts it with no partial result.
func (c *Checker) Eval(typeExpr string, root expr.Node) (*Result, error) {
	target, err := c.ResolveType(typeExpr)
	if err != nil {
		return nil, err
	}

	ev := &evaluator{checker: c, target: target}
	value, err := ev.eval(root)
	if err != nil {
		return nil, err
	}
	return &Result{Value: value, Type: target, Leaves: ev.leaves}, nil
}

type evaluator struct {
	checker *Checker
	target  types.Type
	leaves  []LeafValue
}

func (ev *evaluator) eval(n expr.Node) (bool, error) {
	switch e := n.(type) {
	case expr.Leaf:
		v, err := ev.checker.Satisfies(ev.target, e)
		if err != nil {
			return false, err
		}
		ev.leaves = append(ev.leaves, LeafValue{Leaf: e, Value: v})
		return v, nil

	case expr.NotExpr:
		v, err := ev.eval(e.Operand)
		if err != nil {
			return false, err
		}
		return !v, nil

	case expr.AndExpr:
		l, r, err := ev.evalPair(e.Left, e.Right)
		if err != nil {
			return false, err
		}
		return l && r, nil

	case expr.OrExpr:
		l, r, err := ev.evalPair(e.Left, e.Right)
		if err != nil {
			return false, err
		}
		return l || r, nil

	case expr.XorExpr:
		l, r, err := ev.evalPair(e.Left, e.Right)
		if err != nil {
			return false, err
		}
		return l != r, nil

	default:
		return false, fmt.Errorf("unknown expression node %T", n)
	}
}

func (ev *evaluator) evalPair(left, right expr.Node) (bool, bool, error) {
	l, err := ev.eval(left)
	if err != nil {
		return false, false, err
	}
	r, err := ev.eval(right)
	if err != nil {
		return false, false, err
	}
	return l, r, nil
}
