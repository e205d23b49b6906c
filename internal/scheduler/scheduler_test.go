package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

const waitFor = time.Second

func TestScheduler_ArmFiresAfterTimeout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	mock := clock.NewMock()
	s := New(mock, 5*time.Second)
	var fired atomic.Bool

	// --- Act ---
	round := s.Arm(func() { fired.Store(true) })
	mock.Add(4 * time.Second)

	// --- Assert ---
	select {
	case <-round.Done():
		t.Fatal("round completed before its deadline")
	default:
	}
	require.False(t, fired.Load())

	mock.Add(time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, round.Wait(ctx))
	require.True(t, fired.Load(), "the callback must run before the round completes")
	require.Equal(t, 1, round.Number())
}

func TestScheduler_ReArmStopsPreviousTimer(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	mock := clock.NewMock()
	s := New(mock, 5*time.Second)
	var firstCalls, secondCalls atomic.Int32

	// --- Act ---
	first := s.Arm(func() { firstCalls.Add(1) })
	mock.Add(2 * time.Second)
	second := s.Arm(func() { secondCalls.Add(1) })
	mock.Add(5 * time.Second)

	// --- Assert ---
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, second.Wait(ctx))
	require.Equal(t, int32(0), firstCalls.Load())
	require.Equal(t, int32(1), secondCalls.Load())
	select {
	case <-first.Done():
		t.Fatal("a replaced round must never complete")
	default:
	}
	require.Equal(t, 2, s.Rounds())
	require.Equal(t, 2, second.Number())
}

func TestRound_WaitHonoursCancellation(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s := New(clock.NewMock(), time.Hour)
	round := s.Arm(nil)
	ctx, cancel := context.WithCancel(context.Background())

	// --- Act ---
	cancel()
	err := round.Wait(ctx)

	// --- Assert ---
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, s.Stop())
	require.False(t, s.Stop())
}

func TestScheduler_DefaultsToWallClock(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s := New(nil, 10*time.Millisecond)

	// --- Act ---
	round := s.Arm(nil)

	// --- Assert ---
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, round.Wait(ctx))
	require.Equal(t, 10*time.Millisecond, s.Timeout())
}
