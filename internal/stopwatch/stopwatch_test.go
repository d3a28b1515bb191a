package stopwatch

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00"},
		{9, "00:00:00"},
		{10, "00:00:01"},
		{999, "00:00:99"},
		{1000, "00:01:00"},
		{59_990, "00:59:99"},
		{60_000, "01:00:00"},
		{61_230, "01:01:23"},
		{99*60_000 + 59_999, "99:59:99"},
		{100 * 60_000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Format(tt.ms), "Format(%d)", tt.ms)
	}
}

func TestLegacyLayout(t *testing.T) {
	t.Parallel()

	require.Equal(t, "00:00:00", LayoutLegacy.Format(0))
	require.Equal(t, "00:05:00", LayoutLegacy.Format(1000))
	require.Equal(t, "00:05:99", LayoutLegacy.Format(1099))
	require.Equal(t, "01:00:00", LayoutLegacy.Format(60_000))
}

func TestParseLayout(t *testing.T) {
	t.Parallel()

	l, err := ParseLayout("")
	require.NoError(t, err)
	require.Equal(t, LayoutCentiseconds, l)

	l, err = ParseLayout(" Legacy ")
	require.NoError(t, err)
	require.Equal(t, LayoutLegacy, l)

	_, err = ParseLayout("nanos")
	require.Error(t, err)
}

func TestFormatFieldsNonDecreasingWithinMinute(t *testing.T) {
	t.Parallel()

	prevMin, prevSec := int64(-1), int64(-1)
	for ms := int64(0); ms < 3*60_000; ms += 7 {
		var minutes, sec, frac int64
		_, err := fmt.Sscanf(Format(ms), "%d:%d:%d", &minutes, &sec, &frac)
		require.NoError(t, err)
		require.GreaterOrEqual(t, minutes, prevMin)
		if minutes == prevMin {
			require.GreaterOrEqual(t, sec, prevSec, "seconds went backwards at %d", ms)
		}
		prevMin, prevSec = minutes, sec
	}
}

func TestStateTransitions(t *testing.T) {
	t.Parallel()

	var s State
	require.Equal(t, s, s.Tick(5), "paused state must not advance")

	s = s.Toggle()
	require.True(t, s.Running)
	s = s.Tick(1).Tick(1).Tick(3)
	require.EqualValues(t, 5, s.ElapsedMs)

	s = s.Toggle()
	require.False(t, s.Running)
	require.EqualValues(t, 5, s.Tick(10).ElapsedMs)

	for _, from := range []State{{}, {ElapsedMs: 42}, {ElapsedMs: 42, Running: true}} {
		require.Equal(t, State{}, from.Reset())
	}
}

func TestTimerStopClosesChannel(t *testing.T) {
	t.Parallel()

	tm := StartTimer(time.Millisecond)
	select {
	case _, ok := <-tm.C():
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}

	tm.Stop()
	require.True(t, tm.Stopped())
	_, ok := <-tm.C()
	require.False(t, ok)

	tm.Stop()
}

func TestTimerIDsAreUnique(t *testing.T) {
	t.Parallel()

	a := StartTimer(time.Hour)
	b := StartTimer(time.Hour)
	defer a.Stop()
	defer b.Stop()
	require.NotEqual(t, a.ID(), b.ID())
}

func TestTimerClampsInterval(t *testing.T) {
	t.Parallel()

	tm := StartTimer(time.Microsecond)
	t.Cleanup(tm.Stop)
	require.Equal(t, time.Millisecond, tm.Interval())
	require.EqualValues(t, 1, tm.DeltaMs())
}

func TestStopwatchToggleTwiceReleasesTimers(t *testing.T) {
	t.Parallel()

	sw := New(time.Millisecond, LayoutCentiseconds)
	first := sw.Toggle()
	require.NotNil(t, first)
	require.True(t, sw.State().Running)

	require.Nil(t, sw.Toggle())
	require.False(t, sw.State().Running)
	require.True(t, first.Stopped())
	require.Nil(t, sw.Timer())

	second := sw.Toggle()
	require.NotNil(t, second)
	require.NotEqual(t, first.ID(), second.ID())
	require.Nil(t, sw.Toggle())
	require.True(t, second.Stopped())
}

func TestStopwatchIgnoresStaleTicks(t *testing.T) {
	t.Parallel()

	sw := New(10*time.Millisecond, LayoutCentiseconds)
	first := sw.Toggle()
	require.True(t, sw.Tick(first.ID()))
	require.EqualValues(t, 10, sw.State().ElapsedMs)

	sw.Toggle()
	second := sw.Toggle()
	defer sw.Close()

	require.False(t, sw.Tick(first.ID()))
	require.EqualValues(t, 10, sw.State().ElapsedMs)
	require.True(t, sw.Tick(second.ID()))
	require.EqualValues(t, 20, sw.State().ElapsedMs)
	require.Equal(t, "00:00:02", sw.Display())
}

func TestStopwatchResetFromAnyState(t *testing.T) {
	t.Parallel()

	sw := New(time.Millisecond, LayoutCentiseconds)
	require.EqualValues(t, 0, sw.Reset())

	tm := sw.Toggle()
	sw.Tick(tm.ID())
	sw.Tick(tm.ID())
	require.EqualValues(t, 2, sw.Reset())
	require.Equal(t, State{}, sw.State())
	require.True(t, tm.Stopped())
	require.Nil(t, sw.Timer())
}

func TestStopwatchCloseKeepsElapsed(t *testing.T) {
	t.Parallel()

	sw := New(5*time.Millisecond, LayoutLegacy)
	tm := sw.Toggle()
	sw.Tick(tm.ID())
	sw.Close()
	require.True(t, tm.Stopped())
	require.Equal(t, State{ElapsedMs: 5}, sw.State())
	require.Equal(t, "00:00:05", sw.Display())
}
