package dynamo

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestEnsembleRun(t *testing.T) {
	sim := New(&decayDynamics{}, &eulerStepper{}, nil)
	ens := NewEnsemble(sim, 8, 100)

	results, err := ens.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("got %d results, want 8", len(results))
	}

	// identical dynamics, so every member lands on the same trajectory
	first := results[0].States[len(results[0].States)-1][0]
	for i, r := range results {
		if len(r.States) != 11 {
			t.Errorf("member %d has %d states, want 11", i, len(r.States))
		}
		got := r.States[len(r.States)-1][0]
		if got != first {
			t.Errorf("member %d final state %v, want %v", i, got, first)
		}
	}
}

func TestParallelForCoversRange(t *testing.T) {
	const n = 1000
	var hits [n]int32

	ParallelFor(n, 16, 4, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestParallelForSmallRange(t *testing.T) {
	calls := 0
	ParallelFor(5, 16, 4, func(start, end int) {
		calls++
		if start != 0 || end != 5 {
			t.Errorf("chunk [%d,%d), want [0,5)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("got %d chunks, want 1 for a range below minChunk", calls)
	}
}
