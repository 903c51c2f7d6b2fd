package hintguard

import "testing"

func TestStrategy_IsValid(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     bool
	}{
		{StrategySkip, true},
		{StrategySampled, true},
		{StrategyExhaustive, true},
		{StrategyLogarithmic, true},
		{Strategy("thorough"), false},
		{Strategy(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			if got := tt.strategy.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestStrategy_Implemented(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     bool
	}{
		{StrategySkip, true},
		{StrategySampled, true},
		{StrategyExhaustive, false},
		{StrategyLogarithmic, false},
		{Strategy("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			if got := tt.strategy.Implemented(); got != tt.want {
				t.Errorf("Implemented() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestStrategy_String(t *testing.T) {
	if got := StrategySampled.String(); got != "sampled" {
		t.Errorf("String() = %q; want %q", got, "sampled")
	}
}
