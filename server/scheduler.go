package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/warpzone/engine"
	"github.com/lixenwraith/warpzone/status"
)

// Scheduler calls a tick function on a fixed interval with drift correction
// Sleeps until the next deadline instead of polling
type Scheduler struct {
	clock engine.Clock
	tick  func()

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time

	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statLate *atomic.Int64
}

// NewScheduler creates a scheduler; clock defaults to the system clock
func NewScheduler(interval time.Duration, clock engine.Clock, registry *status.Registry, tick func()) *Scheduler {
	if clock == nil {
		clock = engine.NewTimeProvider()
	}
	if registry == nil {
		registry = status.NewRegistry()
	}
	return &Scheduler{
		clock:        clock,
		tick:         tick,
		tickInterval: interval,
		stopChan:     make(chan struct{}),
		statLate:     registry.Ints.Get("server.late_ticks"),
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		go s.loop()
	}
}

// Stop halts the scheduler loop and waits for the running tick to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.running.CompareAndSwap(true, false) {
			s.wg.Wait()
		}
	})
}

// TickCount returns the number of completed ticks
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	s.nextTickDeadline = s.clock.Now().Add(s.tickInterval)

	timer := time.NewTimer(s.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-timer.C:
		}

		now := s.clock.Now()
		if now.Before(s.nextTickDeadline) {
			timer.Reset(s.nextTickDeadline.Sub(now))
			continue
		}

		s.tick()
		s.tickCount.Add(1)

		s.nextTickDeadline = s.nextTickDeadline.Add(s.tickInterval)

		// Fell too far behind: skip ahead instead of bursting
		maxBehind := s.tickInterval * 2
		if now.Sub(s.nextTickDeadline) > maxBehind {
			s.nextTickDeadline = now.Add(s.tickInterval)
			s.statLate.Add(1)
		}

		sleep := s.nextTickDeadline.Sub(s.clock.Now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
