// Package ignore implements //implint:ignore suppression scoping.
package ignore

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

const ignorePrefix = "//implint:ignore"

// Manager tracks ignore scopes and answers whether a position is suppressed.
type Manager struct {
	// scopes maps filename to the ignore ranges found there.
	scopes map[string][]ignoreScope
}

// ignoreScope is a line range in which reporting is suppressed, limited to
// the named rules. An empty rule set suppresses every rule.
type ignoreScope struct {
	rules map[string]struct{}
	start token.Position
	end   token.Position
}

// ParseComments collects ignore directives from the file and returns a
// Manager. A directive before the package clause applies to the whole file;
// an inline directive applies to its declaration or statement; a standalone
// directive applies to the declaration starting on the next line, or to its
// own line when nothing follows.
func ParseComments(f *ast.File, fset *token.FileSet) *Manager {
	m := &Manager{scopes: make(map[string][]ignoreScope, len(f.Comments))}
	declLines := indexDeclsByLine(f, fset)
	packageLine := fset.Position(f.Package).Line

	for _, cg := range f.Comments {
		for _, comment := range cg.List {
			sc, err := parseComment(comment, f, fset, declLines, packageLine)
			if err != nil {
				// not an ignore directive, or malformed; skip
				continue
			}
			m.scopes[sc.start.Filename] = append(m.scopes[sc.start.Filename], sc)
		}
	}
	return m
}

func parseComment(
	comment *ast.Comment,
	f *ast.File,
	fset *token.FileSet,
	declLines map[int]ast.Node,
	packageLine int,
) (ignoreScope, error) {
	var sc ignoreScope
	text := comment.Text

	if !strings.HasPrefix(text, ignorePrefix) {
		return sc, fmt.Errorf("not an ignore directive")
	}

	rest := text[len(ignorePrefix):]
	if rest != "" && rest[0] != ':' && rest[0] != ' ' && rest[0] != '\t' {
		return sc, fmt.Errorf("not an ignore directive")
	}
	if strings.HasPrefix(rest, ":") {
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return sc, fmt.Errorf("no rules named after colon")
		}
	} else {
		rest = ""
	}
	sc.rules = parseRuleNames(rest)

	pos := fset.Position(comment.Slash)

	// Before the package clause: whole file.
	if pos.Line < packageLine {
		sc.start = fset.Position(f.Pos())
		sc.end = fset.Position(f.End())
		return sc, nil
	}

	// Inline with a declaration on the same line.
	if node, ok := declLines[pos.Line]; ok {
		if fset.Position(node.Pos()).Offset < pos.Offset {
			sc.start = fset.Position(node.Pos())
			sc.end = fset.Position(node.End())
			return sc, nil
		}
	}

	// Standalone: apply to whatever starts on the next line.
	if node, ok := declLines[pos.Line+1]; ok {
		sc.start = pos
		sc.end = fset.Position(node.End())
		return sc, nil
	}

	// Nothing follows: the directive line only.
	sc.start = pos
	sc.end = pos
	return sc, nil
}

func parseRuleNames(text string) map[string]struct{} {
	rules := make(map[string]struct{})
	if text == "" {
		return rules
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rules[rule] = struct{}{}
		}
	}
	return rules
}

// indexDeclsByLine maps each starting line to its outermost declaration or
// statement. The first node wins when several share a line.
func indexDeclsByLine(f *ast.File, fset *token.FileSet) map[int]ast.Node {
	lines := make(map[int]ast.Node)
	ast.Inspect(f, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		switch n.(type) {
		case ast.Decl, ast.Stmt, *ast.Field:
			line := fset.Position(n.Pos()).Line
			if _, exists := lines[line]; !exists {
				lines[line] = n
			}
		}
		return true
	})
	return lines
}

// IsIgnored reports whether the given position and rule are suppressed.
func (m *Manager) IsIgnored(pos token.Position, rule string) bool {
	scopes, ok := m.scopes[pos.Filename]
	if !ok {
		return false
	}
	for _, sc := range scopes {
		if pos.Line < sc.start.Line || pos.Line > sc.end.Line {
			continue
		}
		if len(sc.rules) == 0 {
			return true
		}
		if _, ok := sc.rules[rule]; ok {
			return true
		}
	}
	return false
}
