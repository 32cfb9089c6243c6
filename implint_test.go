package implint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	tt "github.com/implint/implint/internal/types"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".implint.yaml")

	config := Config{
		Name: "implint",
		Rules: map[string]tt.ConfigRule{
			tt.RuleAssertFailed: {Severity: tt.SeverityWarning},
			tt.RuleDenyFailed:   {Severity: tt.SeverityOff},
		},
		IgnorePaths: []string{"vendor", "testdata"},
	}

	require.NoError(t, WriteConfigurationFile(path, config))

	got, err := ParseConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, config, got)
}

func TestParseConfigurationFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".implint.yaml")
	src := `name: implint
rules:
  assert-failed:
    severity: warning
  bad-type-expr:
    severity: "off"
ignore-paths:
  - vendor
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	config, err := ParseConfigurationFile(path)
	require.NoError(t, err)

	assert.Equal(t, "implint", config.Name)
	assert.Equal(t, tt.SeverityWarning, config.Rules[tt.RuleAssertFailed].Severity)
	assert.Equal(t, tt.SeverityOff, config.Rules[tt.RuleBadTypeExpr].Severity)
	assert.Equal(t, []string{"vendor"}, config.IgnorePaths)
}

func TestParseConfigurationFileMissing(t *testing.T) {
	_, err := ParseConfigurationFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSeverityYAML(t *testing.T) {
	tests := []struct {
		text string
		want tt.Severity
	}{
		{"error", tt.SeverityError},
		{"warning", tt.SeverityWarning},
		{"info", tt.SeverityInfo},
		{`"off"`, tt.SeverityOff},
	}

	for _, tc := range tests {
		var s tt.Severity
		require.NoError(t, yaml.Unmarshal([]byte(tc.text), &s), "text %q", tc.text)
		assert.Equal(t, tc.want, s, "text %q", tc.text)
	}

	var s tt.Severity
	assert.Error(t, yaml.Unmarshal([]byte("fatal"), &s))
}

func TestNewWithMissingConfig(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestNewWithDefaults(t *testing.T) {
	e, err := New("", nil)
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestIsIgnoredPath(t *testing.T) {
	e, err := New("", nil)
	require.NoError(t, err)
	e.IgnorePath("vendor")
	e.IgnorePath("gen/proto")

	assert.True(t, e.isIgnoredPath("vendor/lib/lib.go"))
	assert.True(t, e.isIgnoredPath("gen/proto/v1/svc.pb.go"))
	assert.False(t, e.isIgnoredPath("cmd/main.go"))
	assert.False(t, e.isIgnoredPath("vendored/file.go"))
}
