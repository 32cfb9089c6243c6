// Package expr implements the capability-expression grammar.
//
// A capability expression is a boolean formula over interface names:
//
//	Stringer & !io.Reader
//	(Unsigned | Signed) ^ comparable
//	ConvertibleFrom[uint32] & Sendable
//
// Operators follow Go's native precedence for the corresponding binary
// operators: ! binds tightest, then &, then ^, then |. Parentheses override
// precedence. Leaves are capability names, optionally instantiated with
// type arguments in brackets; the argument text is captured verbatim and
// resolved later against a type-checked package.
//
// The full assertion form pairs a type expression with a formula:
//
//	*bytes.Buffer: io.Writer & fmt.Stringer
//
// Parsing is pure syntax. Resolving names against real types is the job of
// the satisfy package.
package expr
