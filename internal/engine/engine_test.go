package engine

import (
	"context"
	"testing"
	"time"

	"github.com/evalund/glosor/internal/terms"
)

// fakeScheduler is a deterministic clock: timers fire only when the test
// advances time, on the calling goroutine.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at        time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := &fakeTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// Advance moves the clock forward, firing due timers in schedule order.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		fired := false
		for _, t := range s.timers {
			if !t.fired && !t.cancelled && t.at <= s.now {
				t.fired = true
				t.fn()
				fired = true
			}
		}
		if !fired {
			return
		}
	}
}

// pending counts timers that could still fire.
func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.cancelled {
			n++
		}
	}
	return n
}

type recordedMistake struct {
	materialID, term string
}

type fakeSink struct {
	mistakes []recordedMistake
}

func (f *fakeSink) RecordMistake(_ context.Context, materialID, term, _, _ string) error {
	f.mistakes = append(f.mistakes, recordedMistake{materialID: materialID, term: term})
	return nil
}

func testTerms(n int) []terms.GameTerm {
	words := []string{"fotosyntes", "klorofyll", "stomata", "cellandning", "glukos", "kloroplast"}
	out := make([]terms.GameTerm, n)
	for i := 0; i < n; i++ {
		w := words[i%len(words)]
		out[i] = terms.GameTerm{
			Term: terms.Term{
				ID:         w,
				MaterialID: "bio-1",
				Term:       w,
				Definition: "definition av " + w,
				Language:   "sv",
			},
			Distractors: []string{"fel ett", "fel två"},
		}
	}
	return out
}

func testConfig() Config {
	return Config{
		Tiers: []Tier{
			{Name: "unistructural", MinStreak: 0, Distractors: 2, ShowTime: 5 * time.Second},
			{Name: "multistructural", MinStreak: 2, Distractors: 3, ShowTime: 4 * time.Second},
			{Name: "relational", MinStreak: 4, Distractors: 4, ShowTime: 3 * time.Second},
		},
		Scoring: Scoring{
			Base:           10,
			TimeBonus:      5,
			TimeBonusUnder: 3 * time.Second,
			StreakBonus:    2,
		},
		Lives:              3,
		FeedbackDelay:      time.Second,
		DowngradeWindow:    3,
		DowngradeThreshold: 2,
	}
}

func newTestEngine(t *testing.T, n int, opts ...Option) (*Engine, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	e, err := New(testConfig(), testTerms(n), "sv", nil, sched, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, sched
}

func TestRoundResolutionExclusivity(t *testing.T) {
	e, _ := newTestEngine(t, 3)
	e.Start()

	// A collision and a user pick arrive in the same synchronous turn.
	e.HandleMistake(MistakeCollision, "")
	e.HandleCorrect("fotosyntes")

	if len(e.Results()) != 1 {
		t.Fatalf("expected exactly one result, got %d", len(e.Results()))
	}
	if e.Results()[0].Correct {
		t.Error("the late correct pick must not override the collision")
	}
}

func TestTimerCancellationOnRestart(t *testing.T) {
	e, sched := newTestEngine(t, 3)
	e.Start()

	e.HandleCorrect("fotosyntes")
	if e.State() != StatePaused {
		t.Fatalf("expected timed pause, got %s", e.State())
	}

	// Restart while the feedback timer is pending.
	e.Start()
	round := e.Round()
	results := len(e.Results())

	sched.Advance(10 * time.Second)

	// The old advance timer must not have moved the new game; only the
	// new round's expiry may have fired.
	if e.Round() > round+1 {
		t.Errorf("stale timer advanced rounds: at round %d", e.Round())
	}
	if e.State() == StateFinished {
		t.Errorf("stale timers finished the new game: %s", e.FinishReason())
	}
	if len(e.Results()) > results+1 {
		t.Errorf("stale timers recorded extra results: %d", len(e.Results()))
	}
}

func TestLivesTermination(t *testing.T) {
	e, sched := newTestEngine(t, 6)
	e.Start()

	for i := 0; i < 3; i++ {
		e.HandleMistake(MistakeWrongPick, "fel ett")
		sched.Advance(time.Second)
	}

	if e.State() != StateFinished {
		t.Fatalf("expected finished, got %s", e.State())
	}
	if e.FinishReason() != FinishLives {
		t.Errorf("expected lives finish, got %s", e.FinishReason())
	}
	if len(e.Results()) != 3 {
		t.Errorf("expected 3 results, got %d", len(e.Results()))
	}
	if sched.pending() != 0 {
		t.Errorf("finished game left %d live timers", sched.pending())
	}
}

func TestCompletionFinish(t *testing.T) {
	e, sched := newTestEngine(t, 2)
	e.Start()

	e.HandleCorrect("fotosyntes")
	sched.Advance(time.Second)
	if e.State() != StatePlaying || e.Round() != 1 {
		t.Fatalf("expected round 1 playing, got round %d in %s", e.Round(), e.State())
	}

	e.HandleCorrect("klorofyll")
	sched.Advance(time.Second)
	if e.FinishReason() != FinishCompleted {
		t.Fatalf("expected completed finish, got %s", e.FinishReason())
	}
}

func TestExpiryRecordsTimeout(t *testing.T) {
	e, sched := newTestEngine(t, 3)
	e.Start()

	sched.Advance(5 * time.Second)

	results := e.Results()
	if len(results) != 1 {
		t.Fatalf("expected 1 result after expiry, got %d", len(results))
	}
	r := results[0]
	if r.Correct || r.Reason != MistakeTimeout || r.Picked != NoSelectionLabel {
		t.Errorf("unexpected timeout record: %+v", r)
	}
	if e.Lives() != 2 {
		t.Errorf("expected 2 lives, got %d", e.Lives())
	}
}

func TestManualPauseDefersFeedbackAdvance(t *testing.T) {
	e, sched := newTestEngine(t, 3)
	e.Start()

	e.HandleCorrect("fotosyntes")
	e.Pause()
	sched.Advance(5 * time.Second)

	// The advance fired while manually paused; it must be held.
	if e.Round() != 0 {
		t.Fatalf("advance ran during manual pause: round %d", e.Round())
	}

	e.Resume()
	if e.Round() != 1 || e.State() != StatePlaying {
		t.Errorf("resume must apply the deferred advance: round %d in %s", e.Round(), e.State())
	}
}

func TestManualPauseStopsExpiry(t *testing.T) {
	e, sched := newTestEngine(t, 3)
	e.Start()

	e.Pause()
	sched.Advance(10 * time.Second)
	if len(e.Results()) != 0 {
		t.Fatal("expiry fired while paused")
	}

	e.Resume()
	sched.Advance(5 * time.Second)
	if len(e.Results()) != 1 {
		t.Fatal("expiry window was not rearmed on resume")
	}
}

func TestScoring(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	e, sched := newTestEngine(t, 3, WithClock(clock))
	e.Start()

	// Instant answer: base 10 + time bonus 5 + streak bonus 2*1.
	e.HandleCorrect("fotosyntes")
	if e.Score() != 17 {
		t.Errorf("expected score 17, got %d", e.Score())
	}
	sched.Advance(time.Second)

	// Slow answer: no time bonus. 10 + 2*2 = 14.
	now = now.Add(4 * time.Second)
	e.HandleCorrect("klorofyll")
	if e.Score() != 17+14 {
		t.Errorf("expected score 31, got %d", e.Score())
	}
}

func TestTierLadder(t *testing.T) {
	e, sched := newTestEngine(t, 6)
	e.Start()

	if e.CurrentTier().Name != "unistructural" {
		t.Fatalf("unexpected starting tier %q", e.CurrentTier().Name)
	}

	e.HandleCorrect("fotosyntes")
	sched.Advance(time.Second)
	e.HandleCorrect("klorofyll")
	sched.Advance(time.Second)

	if e.CurrentTier().Name != "multistructural" {
		t.Errorf("streak 2 should reach multistructural, got %q", e.CurrentTier().Name)
	}

	// Two mistakes inside the window step the tier back down.
	e.HandleMistake(MistakeWrongPick, "fel ett")
	sched.Advance(time.Second)
	e.HandleMistake(MistakeWrongPick, "fel två")
	sched.Advance(time.Second)

	if e.CurrentTier().Name != "unistructural" {
		t.Errorf("recent mistakes should downgrade, got %q", e.CurrentTier().Name)
	}
}

func TestStreakResetsOnMistake(t *testing.T) {
	e, sched := newTestEngine(t, 4)
	e.Start()

	e.HandleCorrect("fotosyntes")
	sched.Advance(time.Second)
	e.HandleCorrect("klorofyll")
	sched.Advance(time.Second)
	e.HandleMistake(MistakeWrongPick, "fel ett")

	if e.Streak() != 0 {
		t.Errorf("streak must reset on mistake, got %d", e.Streak())
	}
	if e.MaxStreak() != 2 {
		t.Errorf("max streak should be 2, got %d", e.MaxStreak())
	}
}

func TestMistakesForwardedToSink(t *testing.T) {
	sink := &fakeSink{}
	e, sched := newTestEngine(t, 3, WithMistakeSink(sink))
	e.Start()

	e.HandleMistake(MistakeWrongPick, "fel ett")
	sched.Advance(time.Second)
	e.HandleCorrect("klorofyll")

	if len(sink.mistakes) != 1 {
		t.Fatalf("expected 1 recorded mistake, got %d", len(sink.mistakes))
	}
	m := sink.mistakes[0]
	if m.materialID != "bio-1" || m.term != "fotosyntes" {
		t.Errorf("unexpected mistake record: %+v", m)
	}
}

func TestAbort(t *testing.T) {
	e, sched := newTestEngine(t, 3)
	e.Start()
	e.HandleCorrect("fotosyntes")

	e.Abort()
	if e.FinishReason() != FinishAborted {
		t.Fatalf("expected aborted, got %s", e.FinishReason())
	}

	sched.Advance(10 * time.Second)
	if e.State() != StateFinished || len(e.Results()) != 1 {
		t.Error("timers mutated state after abort")
	}
}
