package satisfy

import (
	"fmt"
	"go/token"
	"go/types"

	"github.com/implint/implint/expr"
)

// Checker resolves types and capability leaves against one type-checked
// package, at a fixed scope position. The position matters: an assertion
// written inside a generic function resolves that function's type parameters,
// and the answer is whatever is provable from their constraints at that
// point. An unconstrained type parameter therefore reports false for every
// non-universal capability, even if all of its eventual instantiations would
// satisfy it.
type Checker struct {
	fset *token.FileSet
	pkg  *types.Package
	pos  token.Pos
}

// NewChecker creates a checker bound to pkg at pos. pos must lie within one
// of the package's files.
func NewChecker(fset *token.FileSet, pkg *types.Package, pos token.Pos) *Checker {
	return &Checker{fset: fset, pkg: pkg, pos: pos}
}

// TypeError reports that the type-under-test did not resolve to a type.
type TypeError struct {
	Expr string
	Err  error
}

func (e *TypeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot resolve type %q: %v", e.Expr, e.Err)
	}
	return fmt.Sprintf("%q is not a type", e.Expr)
}

// LeafError reports that a capability leaf did not resolve to something
// checkable. NotInterface distinguishes a name that resolved to a
// non-interface type from a name that did not resolve at all.
type LeafError struct {
	Leaf         expr.Leaf
	Msg          string
	NotInterface bool
}

func (e *LeafError) Error() string {
	return fmt.Sprintf("capability %s: %s", e.Leaf.String(), e.Msg)
}

// ResolveType evaluates a type expression in the package scope at the
// checker's position.
func (c *Checker) ResolveType(src string) (types.Type, error) {
	tv, err := types.Eval(c.fset, c.pkg, c.pos, src)
	if err != nil {
		return nil, &TypeError{Expr: src, Err: err}
	}
	if !tv.IsType() {
		return nil, &TypeError{Expr: src}
	}
	return tv.Type, nil
}

// Satisfies reports whether t satisfies the single capability leaf.
//
// A leaf resolves to an interface type, a constraint interface, or the
// builtin comparable. Method-set interfaces are checked with
// types.Implements, type-set interfaces with types.Satisfies, and
// comparable with types.Comparable. All three answer from declared type
// information alone; nothing is executed.
func (c *Checker) Satisfies(t types.Type, leaf expr.Leaf) (bool, error) {
	if leaf.Name == "comparable" {
		if len(leaf.Args) > 0 {
			return false, &LeafError{Leaf: leaf, Msg: "comparable takes no type arguments"}
		}
		return types.Comparable(t), nil
	}

	capType, err := c.ResolveType(leaf.String())
	if err != nil {
		return false, &LeafError{Leaf: leaf, Msg: "not found in scope"}
	}

	iface, ok := capType.Underlying().(*types.Interface)
	if !ok {
		return false, &LeafError{
			Leaf:         leaf,
			Msg:          fmt.Sprintf("%s is not an interface type", capType),
			NotInterface: true,
		}
	}

	if iface.IsMethodSet() {
		return types.Implements(t, iface), nil
	}
	return types.Satisfies(t, iface), nil
}
