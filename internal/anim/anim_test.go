package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) time.Time {
	f.now = f.now.Add(d)
	return f.now
}

func TestStepsFireInOrder(t *testing.T) {
	clk := newFakeClock()
	s := NewScheduler(clk)

	var got []string
	s.Schedule("fade",
		Step{After: 20 * time.Millisecond, Apply: func() { got = append(got, "b") }},
		Step{After: 0, Apply: func() { got = append(got, "a") }},
		Step{After: 40 * time.Millisecond, Apply: func() { got = append(got, "c") }},
	)

	require.Equal(t, 1, s.Tick(clk.Now()))
	require.Equal(t, []string{"a"}, got)

	require.Equal(t, 2, s.Tick(clk.advance(50*time.Millisecond)))
	require.Equal(t, []string{"a", "b", "c"}, got)

	require.False(t, s.Pending())
}

func TestLastScheduleWins(t *testing.T) {
	clk := newFakeClock()
	s := NewScheduler(clk)

	var got []string
	s.Schedule("fade", Step{After: 10 * time.Millisecond, Apply: func() { got = append(got, "old") }})
	s.Schedule("fade", Step{After: 10 * time.Millisecond, Apply: func() { got = append(got, "new") }})

	s.Tick(clk.advance(20 * time.Millisecond))
	require.Equal(t, []string{"new"}, got, "superseded steps never fire")
}

func TestKeysAreIndependent(t *testing.T) {
	clk := newFakeClock()
	s := NewScheduler(clk)

	var got []string
	s.Schedule("fade", Step{After: 10 * time.Millisecond, Apply: func() { got = append(got, "fade") }})
	s.Schedule("pulse", Step{After: 10 * time.Millisecond, Apply: func() { got = append(got, "pulse") }})
	s.Schedule("pulse", Step{After: 10 * time.Millisecond, Apply: func() { got = append(got, "pulse2") }})

	s.Tick(clk.advance(20 * time.Millisecond))
	require.Equal(t, []string{"fade", "pulse2"}, got)
}

func TestCancel(t *testing.T) {
	clk := newFakeClock()
	s := NewScheduler(clk)

	fired := false
	s.Schedule("fade", Step{After: 10 * time.Millisecond, Apply: func() { fired = true }})
	s.Cancel("fade")

	require.Equal(t, 0, s.Tick(clk.advance(time.Second)))
	require.False(t, fired)
}

func TestCloseMakesStepsNoops(t *testing.T) {
	clk := newFakeClock()
	s := NewScheduler(clk)

	fired := false
	s.Schedule("fade", Step{After: 10 * time.Millisecond, Apply: func() { fired = true }})
	s.Close()

	require.Equal(t, 0, s.Tick(clk.advance(time.Second)))
	require.False(t, fired)
	require.False(t, s.Pending())

	// Scheduling after Close is ignored too.
	s.Schedule("fade", Step{Apply: func() { fired = true }})
	s.Tick(clk.advance(time.Second))
	require.False(t, fired)
}

func TestNextDue(t *testing.T) {
	clk := newFakeClock()
	s := NewScheduler(clk)

	_, ok := s.NextDue()
	require.False(t, ok)

	s.Schedule("fade",
		Step{After: 30 * time.Millisecond, Apply: func() {}},
		Step{After: 10 * time.Millisecond, Apply: func() {}},
	)
	d, ok := s.NextDue()
	require.True(t, ok)
	require.Equal(t, 10*time.Millisecond, d)

	// Past-due steps report zero, not negative.
	clk.advance(20 * time.Millisecond)
	d, ok = s.NextDue()
	require.True(t, ok)
	require.Equal(t, time.Duration(0), d)
}

func TestSameInstantTieBreaksByScheduleOrder(t *testing.T) {
	clk := newFakeClock()
	s := NewScheduler(clk)

	var got []string
	s.Schedule("a", Step{After: 10 * time.Millisecond, Apply: func() { got = append(got, "first") }})
	s.Schedule("b", Step{After: 10 * time.Millisecond, Apply: func() { got = append(got, "second") }})

	s.Tick(clk.advance(10 * time.Millisecond))
	require.Equal(t, []string{"first", "second"}, got)
}
