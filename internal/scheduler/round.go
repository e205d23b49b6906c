package scheduler

import (
	"context"
	"sync"
)

// Round is the completion signal of one armed deadline.
type Round struct {
	number int
	done   chan struct{}
	once   sync.Once
}

func newRound(number int) *Round {
	return &Round{number: number, done: make(chan struct{})}
}

// Number is the 1-based index of the round.
func (r *Round) Number() int {
	return r.number
}

// Done is closed when the round's deadline has expired and its callback has
// returned.
func (r *Round) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the round completes or ctx is done.
func (r *Round) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Round) complete() {
	r.once.Do(func() { close(r.done) })
}
