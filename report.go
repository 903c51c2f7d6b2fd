package hintguard

import (
	"fmt"
	"strings"
)

// ViolationReport explains why a value failed a compiled check.
// It mirrors the failing path through the hint tree down to the first
// concrete mismatch (or, for unions, each member's mismatch).
//
// Reports are built only by the diagnostic walker, never by the fast path.
type ViolationReport struct {
	// Path locates the offending sub-value within the checked value,
	// e.g. "value[2].name" or "value{key}".
	Path string `json:"path"`

	// Kind classifies the violation
	Kind ViolationKind `json:"kind"`

	// Expected is the rendering of the hint the sub-value was checked against
	Expected string `json:"expected"`

	// Got is the shallow classification of the offending sub-value
	Got string `json:"got"`

	// Value is the offending sub-value itself
	Value any `json:"value,omitempty"`

	// Message contains human-readable details
	Message string `json:"message"`

	// Children holds nested violations: one per rejected union member,
	// or the violation chain of the first failing container element.
	Children []*ViolationReport `json:"children,omitempty"`
}

// NewViolation creates a report node.
func NewViolation(kind ViolationKind, path, expected, got string, value any) *ViolationReport {
	return &ViolationReport{
		Kind:     kind,
		Path:     path,
		Expected: expected,
		Got:      got,
		Value:    value,
	}
}

// WithMessage sets the detail message and returns the report.
func (r *ViolationReport) WithMessage(format string, args ...any) *ViolationReport {
	r.Message = fmt.Sprintf(format, args...)
	return r
}

// AddChild appends a nested violation.
func (r *ViolationReport) AddChild(child *ViolationReport) *ViolationReport {
	if child != nil {
		r.Children = append(r.Children, child)
	}
	return r
}

// Leaf returns the first deepest violation in the report, which is usually
// the most specific explanation available.
func (r *ViolationReport) Leaf() *ViolationReport {
	if len(r.Children) == 0 {
		return r
	}
	return r.Children[0].Leaf()
}

// Render returns the full human-readable explanation, one violation per
// line, nested violations indented beneath their parent.
func (r *ViolationReport) Render() string {
	var sb strings.Builder
	r.render(&sb, 0)
	return sb.String()
}

func (r *ViolationReport) render(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(r.Path)
	sb.WriteString(": ")
	if r.Message != "" {
		sb.WriteString(r.Message)
	} else {
		sb.WriteString("expected ")
		sb.WriteString(r.Expected)
		sb.WriteString(", got ")
		sb.WriteString(r.Got)
	}
	for _, c := range r.Children {
		sb.WriteByte('\n')
		c.render(sb, depth+1)
	}
}

// String implements fmt.Stringer.
func (r *ViolationReport) String() string {
	return r.Render()
}
