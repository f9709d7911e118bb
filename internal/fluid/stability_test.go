package fluid

import (
	"math"
	"testing"
)

func TestStableDownFlowFirstBand(t *testing.T) {
	for _, gravity := range []float64{0.0, 0.5, 0.8, 2.0} {
		if got := StableDownFlow(0.0, gravity); got != 1.0 {
			t.Errorf("StableDownFlow(0, %f) = %f, want 1.0", gravity, got)
		}
		if got := StableDownFlow(1.0, gravity); got != 1.0 {
			t.Errorf("StableDownFlow(1, %f) = %f, want 1.0", gravity, got)
		}
		if got := StableDownFlow(0.37, gravity); got != 1.0 {
			t.Errorf("StableDownFlow(0.37, %f) = %f, want 1.0", gravity, got)
		}
	}
}

func TestStableDownFlowCompressionBand(t *testing.T) {
	gravity := 0.8
	if got, want := StableDownFlow(1.5, gravity), 1.0+1.5*0.1; math.Abs(got-want) > 1e-12 {
		t.Errorf("StableDownFlow(1.5) = %f, want %f", got, want)
	}
	if got, want := StableDownFlow(2.5, gravity), 1.25; math.Abs(got-want) > 1e-12 {
		t.Errorf("StableDownFlow(2.5) = %f, want %f", got, want)
	}
}

func TestStableDownFlowSplitBand(t *testing.T) {
	gravity := 0.8
	if got, want := StableDownFlow(4.0, gravity), (4.0+gravity)/2.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("StableDownFlow(4.0) = %f, want %f", got, want)
	}
}

// The second and third bands do not meet at the 2.0+gravity breakpoint:
// the jump there is exactly 0.9*gravity - 0.2. This is a known seam in
// the tuning, pinned here so an accidental "fix" is caught.
func TestStableDownFlowBreakpointSeam(t *testing.T) {
	for _, gravity := range []float64{0.5, 0.8, 1.0} {
		bp := 2.0 + gravity
		below := 1.0 + bp*0.1
		at := StableDownFlow(bp, gravity)
		seam := at - below
		want := 0.9*gravity - 0.2
		if math.Abs(seam-want) > 1e-12 {
			t.Errorf("gravity %f: seam %f, want %f", gravity, seam, want)
		}
	}
}
