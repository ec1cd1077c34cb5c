package core

import (
	"sync"
	"testing"
)

func TestAtomicFloat(t *testing.T) {
	var a AtomicFloat
	if got := a.Load(); got != 0 {
		t.Fatalf("zero value: got %v, want 0", got)
	}
	a.Store(-0.25)
	if got := a.Load(); got != -0.25 {
		t.Fatalf("got %v, want -0.25", got)
	}
}

func TestAtomicFloatConcurrent(t *testing.T) {
	var a AtomicFloat
	a.Store(1)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			a.Store(float64(i % 2))
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			if v := a.Load(); v != 0 && v != 1 {
				t.Errorf("torn value %v", v)
				return
			}
		}
	}()
	wg.Wait()
}
