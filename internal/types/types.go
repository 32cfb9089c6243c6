package types

import (
	"fmt"
	"go/token"
)

// Rule names for issues reported by the engine.
const (
	RuleAssertFailed      = "assert-failed"
	RuleDenyFailed        = "deny-failed"
	RuleBadAssertSyntax   = "bad-assert-syntax"
	RuleBadTypeExpr       = "bad-type-expr"
	RuleUnknownCapability = "unknown-capability"
	RuleNotACapability    = "not-a-capability"
)

// Issue represents a single finding at an assertion site.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
	Severity   Severity
}

// Severity is the reporting level of an issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalYAML accepts the lowercase severity names used in config files.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch raw {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity %q", raw)
	}
	return nil
}

// MarshalYAML writes the lowercase severity name.
func (s Severity) MarshalYAML() (interface{}, error) {
	switch s {
	case SeverityError:
		return "error", nil
	case SeverityWarning:
		return "warning", nil
	case SeverityInfo:
		return "info", nil
	case SeverityOff:
		return "off", nil
	}
	return nil, fmt.Errorf("unknown severity %d", int(s))
}

// ConfigRule is the per-rule configuration block.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
