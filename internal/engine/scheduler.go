package engine

import "time"

// Scheduler abstracts one-shot delayed callbacks so the engine's timer
// discipline is testable with a fake clock. AfterFunc returns a cancel
// function; cancelling after the callback ran is a no-op.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the wall-clock Scheduler backed by time.AfterFunc.
// Callers that mutate engine state from the callback must serialize it
// onto the event loop themselves; the TUI layer does this by mapping
// callbacks onto program messages.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
