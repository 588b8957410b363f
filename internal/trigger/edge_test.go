package trigger

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestEdgeTakeConsumesOnce(t *testing.T) {
	var e Edge
	if e.Take() {
		t.Fatalf("fresh edge should not be pending")
	}
	e.Raise()
	if !e.Pending() {
		t.Fatalf("raised edge should be pending")
	}
	if !e.Take() {
		t.Fatalf("first take should observe the raise")
	}
	if e.Take() {
		t.Fatalf("second take should not observe a stale raise")
	}
}

func TestEdgeConcurrentTakersSeeOneRaise(t *testing.T) {
	var e Edge
	e.Raise()
	var hits atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if e.Take() {
				hits.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := hits.Load(); got != 1 {
		t.Fatalf("takers observing raise = %d, want 1", got)
	}
}
