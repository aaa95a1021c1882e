// Package sched provides a small per-owner timer group. A room schedules
// its tick loop, countdown, clock, and auxiliary work on one Scheduler so
// teardown is a single CancelAll call instead of tracking handles ad hoc.
package sched

import (
	"sync"
	"time"
)

type Scheduler struct {
	mu        sync.Mutex
	cancelled bool
	stops     map[int]chan struct{}
	nextID    int
}

func New() *Scheduler {
	return &Scheduler{stops: make(map[int]chan struct{})}
}

// Repeat runs fn every interval until the returned cancel func or CancelAll
// is called. fn runs on its own goroutine; missed ticks are dropped, not
// queued.
func (s *Scheduler) Repeat(interval time.Duration, fn func()) (cancel func()) {
	id, stop := s.register()
	if stop == nil {
		return func() {}
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if s.stopped() {
					return
				}
				fn()
			}
		}
	}()
	return func() { s.remove(id) }
}

// Once runs fn a single time after delay unless cancelled first.
func (s *Scheduler) Once(delay time.Duration, fn func()) (cancel func()) {
	id, stop := s.register()
	if stop == nil {
		return func() {}
	}
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-stop:
			return
		case <-timer.C:
		}
		s.remove(id)
		if s.stopped() {
			return
		}
		fn()
	}()
	return func() { s.remove(id) }
}

// CancelAll stops every scheduled task and rejects future ones. Idempotent.
// A task observing the cancellation concurrently with its timer firing does
// not run.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
	for id, stop := range s.stops {
		close(stop)
		delete(s.stops, id)
	}
}

func (s *Scheduler) register() (int, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return 0, nil
	}
	id := s.nextID
	s.nextID++
	stop := make(chan struct{})
	s.stops[id] = stop
	return id, stop
}

func (s *Scheduler) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stop, ok := s.stops[id]; ok {
		close(stop)
		delete(s.stops, id)
	}
}

func (s *Scheduler) stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}
