// Package scheduler drives the bounded observation window of each check
// round.
//
// # How It Works
//
// A round is armed with a callback. When the deadline expires the callback
// runs on the clock's timer goroutine and the round's completion signal
// fires. The checker blocks in Round.Wait until then, or until its context is
// cancelled:
//
//	round := s.Arm(finishRound)
//	if err := round.Wait(ctx); err != nil {
//	    return err
//	}
//	analyzeResults()
//
// Arming a new round stops the previous timer first, so at most one deadline
// is pending at any time. The clock is injectable so tests can advance time
// deterministically with clock.NewMock.
package scheduler
