package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/hintguard/hintguard"
)

// intChecker accepts only int values.
type intChecker struct{}

func (intChecker) Check(value any) (bool, error) {
	_, ok := value.(int)
	return ok, nil
}

func (intChecker) Explain(value any) *hintguard.ViolationReport {
	return hintguard.NewViolation(hintguard.KindShallow, "value", "int", "", value)
}

func TestCheckAll(t *testing.T) {
	values := []any{1, "two", 3, "four", 5}

	br, err := CheckAll(context.Background(), intChecker{}, values)
	if err != nil {
		t.Fatalf("CheckAll failed: %v", err)
	}

	if br.TotalJobs != 5 {
		t.Errorf("TotalJobs = %d; want 5", br.TotalJobs)
	}
	if br.CompletedJobs != 5 {
		t.Errorf("CompletedJobs = %d; want 5", br.CompletedJobs)
	}
	if br.Violations != 2 {
		t.Errorf("Violations = %d; want 2", br.Violations)
	}

	// Results preserve input order.
	wantOK := []bool{true, false, true, false, true}
	for i, want := range wantOK {
		if br.Results[i] == nil {
			t.Fatalf("Results[%d] = nil", i)
		}
		if br.Results[i].OK != want {
			t.Errorf("Results[%d].OK = %v; want %v", i, br.Results[i].OK, want)
		}
	}
}

func TestCheckAll_Empty(t *testing.T) {
	br, err := CheckAll(context.Background(), intChecker{}, nil)
	if err != nil {
		t.Fatalf("CheckAll failed: %v", err)
	}
	if br.TotalJobs != 0 || len(br.Results) != 0 {
		t.Errorf("BatchResult = %+v; want empty", br)
	}
}

func TestCheckAll_NoChecker(t *testing.T) {
	bc := NewBatchChecker(nil, 2)

	_, err := bc.CheckAll(context.Background(), []any{1})
	if !errors.Is(err, ErrNoChecker) {
		t.Errorf("err = %v; want ErrNoChecker", err)
	}
}

func TestCheckAll_WithExplain(t *testing.T) {
	bc := NewBatchChecker(intChecker{}, 2).WithExplain()

	br, err := bc.CheckAll(context.Background(), []any{1, "two"})
	if err != nil {
		t.Fatalf("CheckAll failed: %v", err)
	}

	if br.Results[0].Report != nil {
		t.Error("Results[0].Report != nil for a conforming value")
	}
	if br.Results[1].Report == nil {
		t.Error("Results[1].Report = nil; want a report for the violation")
	}
}

func TestCheckAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	values := make([]any, 100)
	for i := range values {
		values[i] = i
	}

	br, err := CheckAll(ctx, intChecker{}, values)
	if err == nil {
		t.Error("err = nil for a canceled context")
	}
	if br == nil {
		t.Fatal("BatchResult = nil; want partial results")
	}
	if br.CompletedJobs >= 100 {
		t.Errorf("CompletedJobs = %d; want fewer than 100 after cancellation", br.CompletedJobs)
	}
}

func TestNewBatchChecker_DefaultWorkers(t *testing.T) {
	bc := NewBatchChecker(intChecker{}, 0)
	if bc.workers <= 0 {
		t.Errorf("workers = %d; want > 0", bc.workers)
	}
}
