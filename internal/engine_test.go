package internal

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/implint/implint/internal/types"
)

// checkSrc parses, type-checks and lints one file.
func checkSrc(t *testing.T, e *Engine, src string) []tt.Issue {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "input.go", src, parser.ParseComments)
	require.NoError(t, err)

	conf := types.Config{}
	pkg, err := conf.Check("input", fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	return e.CheckFile(fset, f, pkg)
}

const checkedSrc = `package input

type Stringer interface{ String() string }

type Celsius float64

func (c Celsius) String() string { return "celsius" }

type Opaque struct{ f func() }
`

func TestCheckFilePassingAssert(t *testing.T) {
	e := NewEngine(nil)
	issues := checkSrc(t, e, checkedSrc+`
//implint:assert Celsius: Stringer & comparable
var _ Celsius
`)
	assert.Empty(t, issues)
}

func TestCheckFileFailingAssert(t *testing.T) {
	e := NewEngine(nil)
	issues := checkSrc(t, e, checkedSrc+`
//implint:assert Opaque: Stringer | comparable
var _ Opaque
`)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, tt.RuleAssertFailed, issue.Rule)
	assert.Equal(t, "capability", issue.Category)
	assert.Equal(t, tt.SeverityError, issue.Severity)
	assert.Equal(t, "Opaque does not satisfy (Stringer | comparable)", issue.Message)
	assert.Equal(t, "Stringer=false, comparable=false", issue.Note)
	assert.Equal(t, 11, issue.Start.Line)
}

func TestCheckFileDeny(t *testing.T) {
	e := NewEngine(nil)

	// a holding deny is an issue, a failing one is not
	issues := checkSrc(t, e, checkedSrc+`
//implint:deny Celsius: Stringer
var _ Celsius
`)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.RuleDenyFailed, issues[0].Rule)
	assert.Equal(t, "denied expression holds: Celsius satisfies Stringer", issues[0].Message)

	issues = checkSrc(t, e, checkedSrc+`
//implint:deny Opaque: Stringer
var _ Opaque
`)
	assert.Empty(t, issues)
}

func TestCheckFileBadSyntax(t *testing.T) {
	e := NewEngine(nil)
	issues := checkSrc(t, e, checkedSrc+`
//implint:assert Celsius: Stringer &
var _ Celsius
`)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.RuleBadAssertSyntax, issues[0].Rule)
	assert.Equal(t, "syntax", issues[0].Category)
}

func TestCheckFileResolutionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		rule string
	}{
		{
			"bad type expression",
			"//implint:assert NoSuchType: Stringer",
			tt.RuleBadTypeExpr,
		},
		{
			"unknown capability",
			"//implint:assert Celsius: NoSuchCapability",
			tt.RuleUnknownCapability,
		},
		{
			"capability is not an interface",
			"//implint:assert Celsius: Opaque",
			tt.RuleNotACapability,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(nil)
			issues := checkSrc(t, e, checkedSrc+"\n"+tc.src+"\nvar _ Celsius\n")
			require.Len(t, issues, 1)
			assert.Equal(t, tc.rule, issues[0].Rule)
			assert.Equal(t, "resolution", issues[0].Category)
		})
	}
}

func TestCheckFileNotACapabilitySuggestion(t *testing.T) {
	e := NewEngine(nil)
	issues := checkSrc(t, e, checkedSrc+`
//implint:assert Celsius: Opaque
var _ Celsius
`)
	require.Len(t, issues, 1)
	assert.Equal(t, "capabilities must name interface types or comparable", issues[0].Suggestion)
}

func TestCheckFileIgnoreDirective(t *testing.T) {
	e := NewEngine(nil)
	issues := checkSrc(t, e, checkedSrc+`
func f() {
	//implint:ignore:assert-failed
	var x Opaque //implint:assert Opaque: Stringer
	_ = x
}
`)
	assert.Empty(t, issues)
}

func TestCheckFileIgnoredRule(t *testing.T) {
	e := NewEngine(nil)
	e.IgnoreRule(tt.RuleAssertFailed)
	issues := checkSrc(t, e, checkedSrc+`
//implint:assert Opaque: Stringer
var _ Opaque
`)
	assert.Empty(t, issues)
}

func TestCheckFileSeverityOverride(t *testing.T) {
	e := NewEngine(map[string]tt.ConfigRule{
		tt.RuleAssertFailed: {Severity: tt.SeverityWarning},
		tt.RuleDenyFailed:   {Severity: tt.SeverityOff},
	})
	issues := checkSrc(t, e, checkedSrc+`
//implint:assert Opaque: Stringer
//implint:deny Celsius: Stringer
var _ Opaque
`)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.RuleAssertFailed, issues[0].Rule)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestCheckFileNoDirectives(t *testing.T) {
	e := NewEngine(nil)
	issues := checkSrc(t, e, checkedSrc)
	assert.Empty(t, issues)
}
