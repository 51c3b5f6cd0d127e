package game

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerMsg carries a scheduled callback back onto the program loop.
type timerMsg struct {
	seq int
}

// teaScheduler bridges the engine's Scheduler onto Bubble Tea: every
// AfterFunc becomes a tea.Tick command whose message fires the stored
// callback on the update loop. Cancelling drops the callback, so a tick
// that still arrives is a no-op. This keeps all engine mutation on the
// single program goroutine.
type teaScheduler struct {
	nextSeq int
	pending map[int]func()
	queued  []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[int]func())}
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.nextSeq++
	seq := s.nextSeq
	s.pending[seq] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{seq: seq}
	}))
	return func() { delete(s.pending, seq) }
}

// fire runs the callback for seq if it is still scheduled.
func (s *teaScheduler) fire(seq int) {
	if fn, ok := s.pending[seq]; ok {
		delete(s.pending, seq)
		fn()
	}
}

// drain returns the commands queued since the last drain. Call after
// every engine interaction so new timers actually get scheduled.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
