package engine

import "github.com/hintguard/hintguard"

// Param is one hinted parameter of a checked boundary.
type Param struct {
	// Name identifies the parameter in reports and logs.
	Name string

	// Hint is the raw declarative hint (see hint.Normalize for accepted
	// forms).
	Hint any
}

// CallSignature describes a checked call boundary: an ordered list of hinted
// parameters plus a return hint. It is produced by call-interception glue
// and consumed once by Compile.
type CallSignature struct {
	Params []Param

	// Return is the raw return hint. A nil Return means the return value is
	// unconstrained (use hint.None to require nil).
	Return any
}

// CompiledParam pairs a parameter name with its compiled checker.
type CompiledParam struct {
	Name    string
	Checker *CompiledChecker
}

// CompiledSignature holds one compiled checker per parameter and return.
type CompiledSignature struct {
	Params []CompiledParam

	// Return is the compiled return checker; never nil (an unconstrained
	// return compiles to a constant-pass checker).
	Return *CompiledChecker

	// Warnings aggregates the non-fatal caveats of every hint in the
	// signature.
	Warnings []hintguard.Warning
}

// Trivial reports whether every checker in the signature passes
// unconditionally, i.e. the whole boundary costs nothing to check.
func (cs *CompiledSignature) Trivial() bool {
	for _, p := range cs.Params {
		if !p.Checker.Trivial() {
			return false
		}
	}
	return cs.Return.Trivial()
}
