package formatter

// AssertionIssueFormatter renders failed assert and deny directives. The
// Note field carries the per-capability truth values recorded during
// evaluation, so the report shows which leaf sank the expression.
type AssertionIssueFormatter struct{}

func (f *AssertionIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{- if .Note }}
{{capabilities .Note}}
{{- end }}
`
}
