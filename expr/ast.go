package expr

import "strings"

// Node represents a node in a capability expression tree.
type Node interface {
	isNode()
	String() string
}

// Leaf is a single capability reference: a named interface, optionally
// instantiated with type arguments. The arguments are kept as verbatim
// source text; they are resolved against a package scope at evaluation time.
type Leaf struct {
	Name string
	Args []string
}

func (Leaf) isNode() {}
func (n Leaf) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	return n.Name + "[" + strings.Join(n.Args, ", ") + "]"
}

// NotExpr is a logical negation.
type NotExpr struct {
	Operand Node
}

func (NotExpr) isNode() {}
func (n NotExpr) String() string {
	return "(!" + n.Operand.String() + ")"
}

// AndExpr is true iff both operands are true.
type AndExpr struct {
	Left  Node
	Right Node
}

func (AndExpr) isNode() {}
func (n AndExpr) String() string {
	return "(" + n.Left.String() + " & " + n.Right.String() + ")"
}

// OrExpr is true iff at least one operand is true.
type OrExpr struct {
	Left  Node
	Right Node
}

func (OrExpr) isNode() {}
func (n OrExpr) String() string {
	return "(" + n.Left.String() + " | " + n.Right.String() + ")"
}

// XorExpr is true iff exactly one operand is true.
type XorExpr struct {
	Left  Node
	Right Node
}

func (XorExpr) isNode() {}
func (n XorExpr) String() string {
	return "(" + n.Left.String() + " ^ " + n.Right.String() + ")"
}

// Helper functions to construct expression nodes

// Cap creates a capability leaf.
func Cap(name string, args ...string) Node {
	return Leaf{Name: name, Args: args}
}

// Not creates a logical not expression.
func Not(operand Node) Node {
	return NotExpr{Operand: operand}
}

// And creates a logical and expression.
func And(left, right Node) Node {
	return AndExpr{Left: left, Right: right}
}

// Or creates a logical or expression.
func Or(left, right Node) Node {
	return OrExpr{Left: left, Right: right}
}

// Xor creates an exclusive-or expression.
func Xor(left, right Node) Node {
	return XorExpr{Left: left, Right: right}
}

// Leaves returns every capability leaf in the tree in evaluation order.
func Leaves(n Node) []Leaf {
	var out []Leaf
	collectLeaves(n, &out)
	return out
}

func collectLeaves(n Node, out *[]Leaf) {
	switch e := n.(type) {
	case Leaf:
		*out = append(*out, e)
	case NotExpr:
		collectLeaves(e.Operand, out)
	case AndExpr:
		collectLeaves(e.Left, out)
		collectLeaves(e.Right, out)
	case OrExpr:
		collectLeaves(e.Left, out)
		collectLeaves(e.Right, out)
	case XorExpr:
		collectLeaves(e.Left, out)
		collectLeaves(e.Right, out)
	}
}
