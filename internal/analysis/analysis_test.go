package analysis

import (
	"math"
	"testing"

	"github.com/numlab/physlab/internal/dynamo"
)

func sineResult(omega, dt float64, n int) *dynamo.Result {
	res := &dynamo.Result{
		States: make([]dynamo.State, n),
		Times:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		res.States[i] = dynamo.State{math.Sin(omega * t), omega * math.Cos(omega*t)}
		res.Times[i] = t
	}
	return res
}

func TestFFTPureTone(t *testing.T) {
	n := 256
	dt := 0.01
	freq := 12.5 // bin 32 of a 256-sample window at 100 Hz
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	ps := PowerSpectrum(data)
	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}

	freqs := Frequencies(n, dt)
	if math.Abs(freqs[peak]-freq) > 1e-9 {
		t.Errorf("peak at %.3f Hz, want %.3f", freqs[peak], freq)
	}

	got := DominantFrequency(data, dt)
	if math.Abs(got-freq) > 1e-9 {
		t.Errorf("DominantFrequency = %.3f, want %.3f", got, freq)
	}
}

func TestPadToPowerOfTwo(t *testing.T) {
	in := make([]float64, 100)
	out := Pad(in)
	if len(out) != 128 {
		t.Errorf("padded length = %d, want 128", len(out))
	}

	exact := make([]float64, 64)
	if len(Pad(exact)) != 64 {
		t.Error("power-of-two input should not grow")
	}
}

func TestPhasePortraitCircle(t *testing.T) {
	res := sineResult(1, 0.01, 1000)
	pts := PhasePortrait(res, 0, 1)
	if len(pts) != 1000 {
		t.Fatalf("points = %d, want 1000", len(pts))
	}
	for _, p := range pts {
		r := p.X*p.X + p.Y*p.Y
		if math.Abs(r-1) > 1e-9 {
			t.Fatalf("point off the unit circle: r^2 = %.6f", r)
		}
	}
}

func TestPhasePortraitBadIndex(t *testing.T) {
	res := sineResult(1, 0.1, 10)
	if pts := PhasePortrait(res, 0, 5); pts != nil {
		t.Error("out-of-range index should return nil")
	}
}

func TestStrobeAtOwnPeriod(t *testing.T) {
	// strobing a sine at its own period lands on the same phase point
	omega := 2.0
	res := sineResult(omega, 0.001, 40000)
	pts := Strobe(res, 0, 1, 2*math.Pi/omega)

	if len(pts) < 5 {
		t.Fatalf("strobe points = %d, want several", len(pts))
	}
	for _, p := range pts {
		if math.Abs(p.X-pts[0].X) > 1e-4 || math.Abs(p.Y-pts[0].Y) > 1e-4 {
			t.Fatalf("strobe point drifted: (%.5f, %.5f) vs (%.5f, %.5f)",
				p.X, p.Y, pts[0].X, pts[0].Y)
		}
	}
}

func TestSectionUpwardCrossings(t *testing.T) {
	res := sineResult(1, 0.001, 20000)
	pts := Section(res, 0, 0, 1, 0)

	// sin(t) crosses zero upward once per 2*pi; 20 time units -> 3 times
	if len(pts) != 3 {
		t.Fatalf("crossings = %d, want 3", len(pts))
	}
	for _, p := range pts {
		if math.Abs(p.X) > 1e-3 {
			t.Errorf("crossing recorded at x = %.5f, want 0", p.X)
		}
		if math.Abs(p.Y-1) > 1e-3 {
			t.Errorf("crossing momentum = %.5f, want 1", p.Y)
		}
	}
}
