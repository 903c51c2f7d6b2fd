package hintguard

// ViolationKind identifies what aspect of a hint a value violated.
type ViolationKind string

const (
	// KindShallow indicates the value's immediate kind did not match the hint.
	KindShallow ViolationKind = "shallow"
	// KindArity indicates a fixed tuple with the wrong number of positions.
	KindArity ViolationKind = "arity"
	// KindElement indicates a container element violated the element hint.
	KindElement ViolationKind = "element"
	// KindKey indicates a mapping key violated the key hint.
	KindKey ViolationKind = "key"
	// KindValue indicates a mapping value violated the value hint.
	KindValue ViolationKind = "value"
	// KindLiteral indicates the value equaled none of the permitted literals.
	KindLiteral ViolationKind = "literal"
	// KindValidator indicates an attached validator expression rejected the value.
	KindValidator ViolationKind = "validator"
	// KindUnion indicates every union member rejected the value.
	KindUnion ViolationKind = "union"
	// KindUnresolved indicates a forward reference could not be resolved.
	KindUnresolved ViolationKind = "unresolved"
)

// WarningCode classifies a non-fatal compile-time caveat.
type WarningCode string

const (
	// WarnDeprecatedSpelling flags a hint spelled with a deprecated alias.
	WarnDeprecatedSpelling WarningCode = "deprecated-spelling"
	// WarnNonConstantTime flags a hint whose check cannot honor the O(1)
	// guarantee (e.g. literal equality over non-comparable values).
	WarnNonConstantTime WarningCode = "non-constant-time"
	// WarnShallowOnly flags a hint accepted only at shallow fidelity.
	WarnShallowOnly WarningCode = "shallow-only"
)

// Warning is a non-fatal caveat emitted while compiling a hint.
// Warnings never fail compilation unless WithWarningsAsErrors is set.
type Warning struct {
	// Code identifying the caveat category
	Code WarningCode `json:"code"`

	// Message contains human-readable details
	Message string `json:"message"`

	// Hint is the rendering of the hint that triggered the warning
	Hint string `json:"hint,omitempty"`
}

// String returns a human-readable representation of the warning.
func (w Warning) String() string {
	s := string(w.Code) + ": " + w.Message
	if w.Hint != "" {
		s += " (hint " + w.Hint + ")"
	}
	return s
}
