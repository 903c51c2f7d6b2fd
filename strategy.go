package hintguard

// Strategy selects how much of a value a compiled checker inspects per call.
type Strategy string

// Supported checking strategies.
const (
	// StrategySkip disables checking entirely; every checker passes.
	StrategySkip Strategy = "skip"
	// StrategySampled is the default O(1) strategy: shallow classification
	// plus one randomly sampled element per container level.
	StrategySampled Strategy = "sampled"
	// StrategyExhaustive is reserved for a future O(n) full-scan mode.
	StrategyExhaustive Strategy = "exhaustive"
	// StrategyLogarithmic is reserved for a future O(log n) multi-sample mode.
	StrategyLogarithmic Strategy = "logarithmic"
)

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// IsValid returns true if this is a recognized strategy.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategySkip, StrategySampled, StrategyExhaustive, StrategyLogarithmic:
		return true
	default:
		return false
	}
}

// Implemented returns true if the strategy is usable today.
// Exhaustive and logarithmic modes are accepted by IsValid but reserved.
func (s Strategy) Implemented() bool {
	return s == StrategySkip || s == StrategySampled
}
