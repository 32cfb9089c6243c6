// Package assertion scans Go source for implint directives.
//
// An assertion is written as a comment anywhere in a file:
//
//	//implint:assert *bytes.Buffer: io.Writer & fmt.Stringer
//	//implint:deny []byte: comparable
//
// The directive's position is significant: the type and every capability
// name are resolved in the scope that surrounds the comment, so assertions
// inside generic functions see the function's type parameters.
package assertion

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/implint/implint/expr"
)

const (
	assertPrefix = "//implint:assert"
	denyPrefix   = "//implint:deny"
)

// Kind distinguishes positive from negated directives.
type Kind int

const (
	KindAssert Kind = iota
	KindDeny
)

func (k Kind) String() string {
	if k == KindDeny {
		return "deny"
	}
	return "assert"
}

// Assertion is one well-formed directive.
type Assertion struct {
	Kind     Kind
	TypeExpr string
	Expr     expr.Node
	Src      string // raw "TYPE: EXPR" text as written
	Pos      token.Pos
	Start    token.Position
	End      token.Position
}

// Malformed is a directive whose assertion text failed to parse.
type Malformed struct {
	Msg   string
	Start token.Position
	End   token.Position
}

// Scan collects implint directives from the file's comments.
func Scan(f *ast.File, fset *token.FileSet) ([]Assertion, []Malformed) {
	var asserts []Assertion
	var bad []Malformed

	for _, cg := range f.Comments {
		for _, comment := range cg.List {
			kind, rest, ok := matchDirective(comment.Text)
			if !ok {
				continue
			}

			start := fset.Position(comment.Slash)
			end := fset.Position(comment.End())

			rest = strings.TrimSpace(rest)
			if rest == "" {
				bad = append(bad, Malformed{Msg: "missing assertion text", Start: start, End: end})
				continue
			}

			parsed, err := expr.ParseAssertion(rest)
			if err != nil {
				bad = append(bad, Malformed{Msg: err.Error(), Start: start, End: end})
				continue
			}

			asserts = append(asserts, Assertion{
				Kind:     kind,
				TypeExpr: parsed.TypeExpr,
				Expr:     parsed.Expr,
				Src:      rest,
				Pos:      comment.Slash,
				Start:    start,
				End:      end,
			})
		}
	}
	return asserts, bad
}

// matchDirective reports whether the comment text is an assert or deny
// directive and returns the text after the directive word. The directive
// word must be followed by whitespace or end of comment, so that
// //implint:ignore never matches here.
func matchDirective(text string) (Kind, string, bool) {
	for _, c := range []struct {
		prefix string
		kind   Kind
	}{
		{assertPrefix, KindAssert},
		{denyPrefix, KindDeny},
	} {
		if !strings.HasPrefix(text, c.prefix) {
			continue
		}
		rest := text[len(c.prefix):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return c.kind, rest, true
		}
	}
	return 0, "", false
}
