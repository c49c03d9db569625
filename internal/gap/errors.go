package gap

import "fmt"

// ConfigurationError reports an invalid weight or threshold
// configuration. It is returned at construction time, never
// mid-computation.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// UnknownSkillLevelError reports a categorical skill level label outside
// the known scale. Raised by the normalizer and propagated unmodified.
type UnknownSkillLevelError struct {
	Label string
}

func (e *UnknownSkillLevelError) Error() string {
	return fmt.Sprintf("unknown skill level label %q", e.Label)
}

// ValidationError reports a malformed employee or role shape, detected
// before scoring begins.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Reason
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}
