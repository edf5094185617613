// Package sched runs delayed callbacks and multi-frame routines on the simulation clock.
//
// Everything happens inside Tick, on the caller's goroutine, so game code never
// races with its own timers. Tasks are keyed by an owner and can be cancelled
// one at a time or all at once when the owner goes away.
package sched

import "time"

// Token identifies a scheduled task.
type Token uint64

// Routine is called once per tick with the step duration until it returns false.
type Routine func(dt time.Duration) bool

type task struct {
	token   Token
	owner   any
	due     time.Duration
	fn      func()
	routine Routine
	done    bool
}

// Scheduler is a deterministic per-frame task runner.
type Scheduler struct {
	now   time.Duration
	next  Token
	tasks []*task
	index map[Token]*task
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{index: make(map[Token]*task)}
}

// Now returns the simulated time elapsed across all ticks.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once the clock has advanced by at least d.
// Tasks added during a tick are first considered on the next tick.
func (s *Scheduler) After(owner any, d time.Duration, fn func()) Token {
	return s.add(&task{owner: owner, due: s.now + d, fn: fn})
}

// Go starts a routine that runs every tick, beginning with the next one.
func (s *Scheduler) Go(owner any, r Routine) Token {
	return s.add(&task{owner: owner, routine: r})
}

func (s *Scheduler) add(t *task) Token {
	s.next++
	t.token = s.next
	s.tasks = append(s.tasks, t)
	s.index[t.token] = t
	return t.token
}

// Cancel stops a task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(tok Token) bool {
	t, ok := s.index[tok]
	if !ok || t.done {
		return false
	}
	t.done = true
	delete(s.index, tok)
	return true
}

// CancelOwner stops every pending task of owner and returns how many were stopped.
func (s *Scheduler) CancelOwner(owner any) int {
	n := 0
	for _, t := range s.tasks {
		if !t.done && t.owner == owner {
			t.done = true
			delete(s.index, t.token)
			n++
		}
	}
	return n
}

// Pending returns the number of live tasks of owner.
func (s *Scheduler) Pending(owner any) int {
	n := 0
	for _, t := range s.tasks {
		if !t.done && t.owner == owner {
			n++
		}
	}
	return n
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	return len(s.index)
}

// Tick advances the clock by dt and runs due work in scheduling order.
func (s *Scheduler) Tick(dt time.Duration) {
	s.now += dt

	// Only tasks present at the start of the tick run now.
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		if t.done {
			continue
		}
		if t.routine != nil {
			if !t.routine(dt) {
				s.finish(t)
			}
			continue
		}
		if s.now >= t.due {
			s.finish(t)
			t.fn()
		}
	}

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	clear(s.tasks[len(live):])
	s.tasks = live
}

func (s *Scheduler) finish(t *task) {
	t.done = true
	delete(s.index, t.token)
}

// Reset drops all tasks and rewinds the clock.
func (s *Scheduler) Reset() {
	s.now = 0
	s.tasks = nil
	s.index = make(map[Token]*task)
}
