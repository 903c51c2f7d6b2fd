package hintguard

import "fmt"

// ConfigurationError reports a hint that can never be checked: a malformed
// or unsupported construct, or a forward reference that cannot be resolved.
// It is returned synchronously from compilation (or, for lazily resolved
// forward references, from the first check that needs the resolution) and
// is always fatal to the caller that requested it.
type ConfigurationError struct {
	// Hint is the rendering of the offending hint
	Hint string

	// Reason describes why the hint is unusable
	Reason string

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := "hintguard: unusable hint"
	if e.Hint != "" {
		msg += " " + e.Hint
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a ConfigurationError.
func NewConfigurationError(hint, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Hint: hint, Reason: fmt.Sprintf(format, args...)}
}

// ViolationError reports a value that failed a check. It is never produced
// by the fast path itself; callers (or the Assert helpers) construct it from
// the diagnostic walker's report after Check returns false, so the passing
// case never pays for report construction.
type ViolationError struct {
	// Report is the exhaustive explanation of the failure
	Report *ViolationReport
}

// Error implements the error interface.
func (e *ViolationError) Error() string {
	if e.Report == nil {
		return "hintguard: value violates hint"
	}
	return "hintguard: value violates hint\n" + e.Report.Render()
}
