// Package anim sequences one-shot visual transitions on a single event
// timeline. Nothing here owns a goroutine: steps accumulate with absolute
// fire times and run when the owner calls Tick, which keeps every sequence
// unit-testable against a fake clock.
package anim

import (
	"sort"
	"time"
)

// Clock abstracts time so tests can drive the scheduler without waiting.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func RealClock() Clock { return realClock{} }

type step struct {
	at    time.Time
	key   string
	gen   uint64
	seq   uint64 // insertion order, stable tie-break
	apply func()
}

// Scheduler holds pending steps for one overlay session. Scheduling a new
// sequence under a key supersedes any steps still pending for that key
// (last-scheduled-wins), and Close makes every remaining step a no-op, so a
// stale callback can never revive a primitive after teardown.
type Scheduler struct {
	clock  Clock
	steps  []step
	gens   map[string]uint64
	seq    uint64
	closed bool
}

func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	return &Scheduler{clock: clock, gens: make(map[string]uint64)}
}

// Step is one entry of a sequence: a delay relative to scheduling time and
// the mutation to apply.
type Step struct {
	After time.Duration
	Apply func()
}

// Schedule queues a sequence of steps under an identity key, cancelling any
// steps still pending for the same key.
func (s *Scheduler) Schedule(key string, seq ...Step) {
	if s.closed {
		return
	}
	s.gens[key]++
	gen := s.gens[key]
	now := s.clock.Now()
	for _, st := range seq {
		s.seq++
		s.steps = append(s.steps, step{
			at:    now.Add(st.After),
			key:   key,
			gen:   gen,
			seq:   s.seq,
			apply: st.Apply,
		})
	}
}

// Cancel drops pending steps for one key.
func (s *Scheduler) Cancel(key string) {
	s.gens[key]++
}

// Close cancels everything, permanently. Scheduled but unfired callbacks
// become no-ops.
func (s *Scheduler) Close() {
	s.closed = true
	s.steps = nil
}

// Tick fires every step due at or before now, in time order, and reports how
// many ran. Steps superseded by a later Schedule on the same key are
// silently dropped.
func (s *Scheduler) Tick(now time.Time) int {
	if s.closed || len(s.steps) == 0 {
		return 0
	}
	var due, rest []step
	for _, st := range s.steps {
		if !st.at.After(now) {
			due = append(due, st)
		} else {
			rest = append(rest, st)
		}
	}
	s.steps = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	fired := 0
	for _, st := range due {
		if s.closed || st.gen != s.gens[st.key] {
			continue
		}
		st.apply()
		fired++
	}
	return fired
}

// NextDue reports how long until the earliest pending step, for arming a
// wake-up timer. ok is false when nothing is pending.
func (s *Scheduler) NextDue() (time.Duration, bool) {
	if s.closed || len(s.steps) == 0 {
		return 0, false
	}
	now := s.clock.Now()
	var best time.Time
	found := false
	for _, st := range s.steps {
		if st.gen != s.gens[st.key] {
			continue
		}
		if !found || st.at.Before(best) {
			best = st.at
			found = true
		}
	}
	if !found {
		return 0, false
	}
	d := best.Sub(now)
	if d < 0 {
		d = 0
	}
	return d, true
}

// Pending reports whether any live steps remain.
func (s *Scheduler) Pending() bool {
	_, ok := s.NextDue()
	return ok
}
