package scheduler

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler arms one-shot round deadlines.
type Scheduler struct {
	clock   clock.Clock
	timeout time.Duration

	mu     sync.Mutex
	timer  *clock.Timer
	rounds int
}

// New creates a scheduler whose rounds last timeout. A nil clock uses the
// wall clock.
func New(clk clock.Clock, timeout time.Duration) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	return &Scheduler{
		clock:   clk,
		timeout: timeout,
	}
}

// Arm stops any pending deadline and starts a new round. onExpire runs on
// the timer goroutine before the round is marked complete.
func (s *Scheduler) Arm(onExpire func()) *Round {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.rounds++
	r := newRound(s.rounds)
	s.timer = s.clock.AfterFunc(s.timeout, func() {
		if onExpire != nil {
			onExpire()
		}
		r.complete()
	})
	return r
}

// Stop cancels the pending deadline, if any. It reports whether a deadline
// was stopped before it fired.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return false
	}
	stopped := s.timer.Stop()
	s.timer = nil
	return stopped
}

// Timeout returns the duration of a round.
func (s *Scheduler) Timeout() time.Duration {
	return s.timeout
}

// Rounds returns how many rounds have been armed.
func (s *Scheduler) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds
}
