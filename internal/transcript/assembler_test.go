package transcript

import "testing"

// TestFormatTimestamp checks MM:SS formatting with integer truncation.
func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{9.99, "00:09"},
		{59, "00:59"},
		{60, "01:00"},
		{75.5, "01:15"},
		{600, "10:00"},
		{3599.9, "59:59"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// TestAssemblerLines verifies line formatting and ordering.
func TestAssemblerLines(t *testing.T) {
	a := NewAssembler(100)
	a.Add(0, 4.2, " Welcome to the lesson. ")
	a.Add(64.8, 70, "Second point.")

	want := "00:00 Welcome to the lesson.\n01:04 Second point."
	if got := a.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if a.Empty() {
		t.Error("assembler with lines should not be empty")
	}
}

// TestAssemblerCoverageMonotonic verifies coverage is clamped to 1 and
// never regresses when segments arrive out of proportion.
func TestAssemblerCoverageMonotonic(t *testing.T) {
	a := NewAssembler(100)

	a.Add(0, 50, "halfway")
	if got := a.Coverage(); got != 0.5 {
		t.Fatalf("coverage = %v, want 0.5", got)
	}

	// Earlier end time must not pull coverage back
	a.Add(50, 30, "out of order")
	if got := a.Coverage(); got != 0.5 {
		t.Fatalf("coverage regressed to %v", got)
	}

	a.Add(90, 150, "overshoot")
	if got := a.Coverage(); got != 1 {
		t.Fatalf("coverage = %v, want clamped 1", got)
	}
}

// TestAssemblerUnknownDuration checks that coverage stays at zero when the
// total duration could not be probed.
func TestAssemblerUnknownDuration(t *testing.T) {
	a := NewAssembler(0)
	a.Add(0, 10, "text")
	if got := a.Coverage(); got != 0 {
		t.Errorf("coverage = %v, want 0 for unknown duration", got)
	}
}

// TestAssemblerEmpty verifies blank segments leave the transcript empty.
func TestAssemblerEmpty(t *testing.T) {
	a := NewAssembler(10)
	if !a.Empty() {
		t.Error("new assembler should be empty")
	}

	a.Add(0, 1, "   ")
	if a.Text() != "00:00" {
		// A blank segment still yields its timestamp line; Empty is about text
		t.Errorf("Text() = %q", a.Text())
	}
}
