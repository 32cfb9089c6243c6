package internal

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/implint/implint/internal/assertion"
	"github.com/implint/implint/internal/ignore"
	"github.com/implint/implint/internal/satisfy"
	tt "github.com/implint/implint/internal/types"
)

// Engine checks the assertion directives of type-checked files.
type Engine struct {
	ignoredRules map[string]bool
	severity     map[string]tt.Severity
}

// NewEngine creates an engine, applying per-rule severity overrides from
// the configuration.
func NewEngine(rules map[string]tt.ConfigRule) *Engine {
	e := &Engine{
		ignoredRules: make(map[string]bool),
		severity:     make(map[string]tt.Severity),
	}
	for name, rule := range rules {
		e.severity[name] = rule.Severity
	}
	return e
}

// IgnoreRule disables reporting for the named rule.
func (e *Engine) IgnoreRule(rule string) {
	e.ignoredRules[rule] = true
}

// CheckFile evaluates every directive in one file of a type-checked package
// and returns the resulting issues.
func (e *Engine) CheckFile(fset *token.FileSet, file *ast.File, pkg *types.Package) []tt.Issue {
	asserts, malformed := assertion.Scan(file, fset)
	if len(asserts) == 0 && len(malformed) == 0 {
		return nil
	}

	mgr := ignore.ParseComments(file, fset)

	var issues []tt.Issue
	for _, bad := range malformed {
		issues = e.appendIssue(issues, mgr, tt.Issue{
			Rule:     tt.RuleBadAssertSyntax,
			Category: "syntax",
			Message:  bad.Msg,
			Start:    bad.Start,
			End:      bad.End,
		})
	}

	for _, a := range asserts {
		issues = e.checkAssertion(issues, mgr, fset, pkg, a)
	}
	return issues
}

func (e *Engine) checkAssertion(
	issues []tt.Issue,
	mgr *ignore.Manager,
	fset *token.FileSet,
	pkg *types.Package,
	a assertion.Assertion,
) []tt.Issue {
	checker := satisfy.NewChecker(fset, pkg, a.Pos)
	res, err := checker.Eval(a.TypeExpr, a.Expr)
	if err != nil {
		return e.appendIssue(issues, mgr, resolutionIssue(a, err))
	}

	holds := res.Value
	if a.Kind == assertion.KindDeny {
		holds = !holds
	}
	if holds {
		return issues
	}

	issue := tt.Issue{
		Category: "capability",
		Note:     res.Note(),
		Start:    a.Start,
		End:      a.End,
	}
	if a.Kind == assertion.KindDeny {
		issue.Rule = tt.RuleDenyFailed
		issue.Message = fmt.Sprintf("denied expression holds: %s satisfies %s", a.TypeExpr, a.Expr)
	} else {
		issue.Rule = tt.RuleAssertFailed
		issue.Message = fmt.Sprintf("%s does not satisfy %s", a.TypeExpr, a.Expr)
	}
	return e.appendIssue(issues, mgr, issue)
}

// resolutionIssue maps an evaluation error to its issue rule. All of these
// are failures of the assertion text itself, not of the asserted property.
func resolutionIssue(a assertion.Assertion, err error) tt.Issue {
	issue := tt.Issue{
		Category: "resolution",
		Message:  err.Error(),
		Start:    a.Start,
		End:      a.End,
	}

	var typeErr *satisfy.TypeError
	var leafErr *satisfy.LeafError
	switch {
	case errors.As(err, &typeErr):
		issue.Rule = tt.RuleBadTypeExpr
	case errors.As(err, &leafErr) && leafErr.NotInterface:
		issue.Rule = tt.RuleNotACapability
		issue.Suggestion = "capabilities must name interface types or comparable"
	case errors.As(err, &leafErr):
		issue.Rule = tt.RuleUnknownCapability
	default:
		issue.Rule = tt.RuleBadAssertSyntax
	}
	return issue
}

// appendIssue applies severity configuration and suppression before adding
// the issue to the slice.
func (e *Engine) appendIssue(issues []tt.Issue, mgr *ignore.Manager, issue tt.Issue) []tt.Issue {
	if e.ignoredRules[issue.Rule] {
		return issues
	}
	if mgr != nil && mgr.IsIgnored(issue.Start, issue.Rule) {
		return issues
	}
	issue.Severity = tt.SeverityError
	if s, ok := e.severity[issue.Rule]; ok {
		issue.Severity = s
	}
	if issue.Severity == tt.SeverityOff {
		return issues
	}
	return append(issues, issue)
}
