package game

import (
	"testing"
	"time"
)

func TestTeaSchedulerFireAndCancel(t *testing.T) {
	s := newTeaScheduler()

	fired := 0
	cancel := s.AfterFunc(time.Second, func() { fired++ })
	s.AfterFunc(time.Second, func() { fired += 10 })

	if s.drain() == nil {
		t.Fatal("expected queued tick commands")
	}
	if s.drain() != nil {
		t.Fatal("drain must empty the queue")
	}

	// Cancel the first; its tick message must now be a no-op.
	cancel()
	s.fire(1)
	s.fire(2)

	if fired != 10 {
		t.Errorf("expected only the second callback, fired=%d", fired)
	}

	// Double fire is a no-op.
	s.fire(2)
	if fired != 10 {
		t.Errorf("callback fired twice, fired=%d", fired)
	}
}
