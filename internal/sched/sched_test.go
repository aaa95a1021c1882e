package sched

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRepeat_Fires(t *testing.T) {
	s := New()
	defer s.CancelAll()

	var n atomic.Int64
	s.Repeat(5*time.Millisecond, func() { n.Add(1) })

	deadline := time.After(1 * time.Second)
	for n.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("repeat fired %d times, want at least 3", n.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRepeat_CancelStopsTask(t *testing.T) {
	s := New()
	defer s.CancelAll()

	var n atomic.Int64
	cancel := s.Repeat(5*time.Millisecond, func() { n.Add(1) })
	cancel()

	time.Sleep(50 * time.Millisecond)
	before := n.Load()
	time.Sleep(50 * time.Millisecond)
	if after := n.Load(); after != before {
		t.Errorf("task still firing after cancel: %d -> %d", before, after)
	}
}

func TestOnce_FiresExactlyOnce(t *testing.T) {
	s := New()
	defer s.CancelAll()

	var n atomic.Int64
	s.Once(5*time.Millisecond, func() { n.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if got := n.Load(); got != 1 {
		t.Errorf("once fired %d times, want 1", got)
	}
}

func TestOnce_CancelledBeforeFiring(t *testing.T) {
	s := New()
	defer s.CancelAll()

	var n atomic.Int64
	cancel := s.Once(50*time.Millisecond, func() { n.Add(1) })
	cancel()

	time.Sleep(100 * time.Millisecond)
	if got := n.Load(); got != 0 {
		t.Errorf("cancelled once fired %d times, want 0", got)
	}
}

func TestCancelAll_StopsEverythingAndRejectsNewWork(t *testing.T) {
	s := New()

	var n atomic.Int64
	s.Repeat(5*time.Millisecond, func() { n.Add(1) })
	s.Once(5*time.Millisecond, func() { n.Add(1) })
	s.CancelAll()
	s.CancelAll() // idempotent

	time.Sleep(30 * time.Millisecond)
	before := n.Load()

	// Work scheduled after CancelAll must never run.
	s.Repeat(5*time.Millisecond, func() { n.Add(1) })
	s.Once(5*time.Millisecond, func() { n.Add(1) })

	time.Sleep(50 * time.Millisecond)
	if after := n.Load(); after != before {
		t.Errorf("work ran after CancelAll: %d -> %d", before, after)
	}
}
