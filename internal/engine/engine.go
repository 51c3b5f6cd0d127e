package engine

import (
	"context"
	"errors"
	"time"

	"github.com/evalund/glosor/internal/terms"
)

// State is the engine lifecycle state.
type State string

const (
	// StatePrepare is the initial state, before the first Start.
	StatePrepare State = "prepare"

	// StatePlaying means a round is live and accepting input.
	StatePlaying State = "playing"

	// StatePaused covers both the manual pause and the timed feedback
	// pause between rounds.
	StatePaused State = "paused"

	// StateFinished is terminal.
	StateFinished State = "finished"
)

// FinishReason records why a game ended.
type FinishReason string

const (
	FinishCompleted FinishReason = "completed"
	FinishLives     FinishReason = "lives"
	FinishAborted   FinishReason = "aborted"
)

// MistakeReason tags what resolved a round incorrectly.
type MistakeReason string

const (
	MistakeWrongPick MistakeReason = "wrong-pick"
	MistakeCollision MistakeReason = "collision"
	MistakeTimeout   MistakeReason = "timeout"
)

// NoSelectionLabel is the Picked value recorded when a round expires
// with no answer.
const NoSelectionLabel = "no-selection"

// RoundResult is the per-round history record.
type RoundResult struct {
	Term       string
	Definition string
	Example    string
	Correct    bool
	Elapsed    time.Duration

	// Reason is set on incorrect rounds only.
	Reason MistakeReason

	// Picked is the label the player hit or clicked; NoSelectionLabel on
	// timeout, empty on collisions.
	Picked string
}

// Board is the per-variant adapter: the engine drives the shared round
// lifecycle and the board owns the transient play surface.
type Board interface {
	// SetupRound resets the board for a new prompt at the given tier.
	SetupRound(gt terms.GameTerm, tier Tier)
}

// MistakeSink receives mistake events for future prioritization.
type MistakeSink interface {
	RecordMistake(ctx context.Context, materialID, term, definition, language string) error
}

var (
	errNoTiers = errors.New("config has no difficulty tiers")
	errNoLives = errors.New("config has no lives")
)

// Engine is the shared round state machine behind both game variants.
// It is single-threaded by contract: all calls, including scheduler
// callbacks, must arrive on the same event loop. Timer discipline is the
// load-bearing invariant: at most one advance timer and one expiry timer
// are outstanding, and every transition cancels before it reschedules.
type Engine struct {
	cfg      Config
	terms    []terms.GameTerm
	language string
	board    Board
	sched    Scheduler
	sink     MistakeSink
	now      func() time.Time

	state        State
	finishReason FinishReason
	round        int
	score        int
	streak       int
	maxStreak    int
	lives        int
	tier         int
	results      []RoundResult

	// resolved guards each round against double resolution: a queued
	// collision, a click, and an expiry can all race inside one event
	// turn, and only the first may count.
	resolved bool

	roundStart time.Time

	cancelAdvance func()
	cancelExpire  func()

	// manualPause and advanceQueued keep the manual pause and the timed
	// feedback advance from cancelling each other: an advance firing
	// while manually paused is deferred until Resume.
	manualPause   bool
	advanceQueued bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithMistakeSink forwards mistake events to the given sink.
func WithMistakeSink(sink MistakeSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithClock overrides the elapsed-time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over a prepared term list. board may be nil when
// the caller manages its own play surface.
func New(cfg Config, gameTerms []terms.GameTerm, language string, board Board, sched Scheduler, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(gameTerms) == 0 {
		return nil, errors.New("no terms to play")
	}
	e := &Engine{
		cfg:      cfg,
		terms:    gameTerms,
		language: language,
		board:    board,
		sched:    sched,
		now:      time.Now,
		state:    StatePrepare,
		lives:    cfg.Lives,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Start begins a new game at round zero. Restarting cancels every
// outstanding timer first, so nothing scheduled by a previous game can
// reach the new one.
func (e *Engine) Start() {
	e.cancelTimers()
	e.state = StatePlaying
	e.finishReason = ""
	e.score = 0
	e.streak = 0
	e.maxStreak = 0
	e.lives = e.cfg.Lives
	e.tier = 0
	e.results = nil
	e.manualPause = false
	e.advanceQueued = false
	e.setupRound(0)
}

// Pause enters the manual pause, from live play or from the timed
// feedback pause. It freezes the expiry timer; a pending feedback
// advance keeps running and is deferred, not dropped.
func (e *Engine) Pause() {
	if e.state != StatePlaying && e.state != StatePaused {
		return
	}
	if e.manualPause {
		return
	}
	e.state = StatePaused
	e.manualPause = true
	e.cancelExpiry()
}

// Resume leaves the manual pause. A feedback advance that fired while
// paused is applied now; an advance still pending keeps the engine in
// the timed pause; otherwise the current round resumes with a fresh
// expiry window.
func (e *Engine) Resume() {
	if e.state != StatePaused || !e.manualPause {
		return
	}
	e.manualPause = false
	if e.advanceQueued {
		e.advanceQueued = false
		e.advance()
		return
	}
	if e.resolved {
		// Feedback advance still scheduled; stay in the timed pause.
		return
	}
	e.state = StatePlaying
	e.scheduleExpiry()
}

// Abort ends the game immediately.
func (e *Engine) Abort() {
	if e.state == StateFinished {
		return
	}
	e.finish(FinishAborted)
}

// HandleCorrect resolves the current round as answered correctly.
// picked is the label the player hit.
func (e *Engine) HandleCorrect(picked string) {
	if !e.beginResolve() {
		return
	}
	t := e.terms[e.round]
	elapsed := e.now().Sub(e.roundStart)

	e.streak++
	if e.streak > e.maxStreak {
		e.maxStreak = e.streak
	}
	e.score += e.cfg.Scoring.Base
	if e.cfg.Scoring.TimeBonusUnder > 0 && elapsed < e.cfg.Scoring.TimeBonusUnder {
		e.score += e.cfg.Scoring.TimeBonus
	}
	e.score += e.cfg.Scoring.StreakBonus * e.streak

	if up := tierForStreak(e.cfg.Tiers, e.streak); up > e.tier {
		e.tier = up
	}

	e.results = append(e.results, RoundResult{
		Term:       t.Term.Term,
		Definition: t.Definition,
		Example:    t.FirstExample(),
		Correct:    true,
		Elapsed:    elapsed,
		Picked:     picked,
	})
	e.scheduleAdvance()
}

// HandleMistake resolves the current round as answered incorrectly.
// picked carries the wrong label when one was chosen.
func (e *Engine) HandleMistake(reason MistakeReason, picked string) {
	if !e.beginResolve() {
		return
	}
	t := e.terms[e.round]
	elapsed := e.now().Sub(e.roundStart)

	e.streak = 0
	e.lives--

	e.results = append(e.results, RoundResult{
		Term:       t.Term.Term,
		Definition: t.Definition,
		Example:    t.FirstExample(),
		Correct:    false,
		Elapsed:    elapsed,
		Reason:     reason,
		Picked:     picked,
	})

	if e.tier > 0 && shouldDowngrade(e.results, e.cfg.DowngradeWindow, e.cfg.DowngradeThreshold) {
		e.tier--
	}

	if e.sink != nil {
		// Best effort; a failed write never disturbs the round flow.
		_ = e.sink.RecordMistake(context.Background(), t.MaterialID, t.Term.Term, t.Definition, t.Language)
	}

	e.scheduleAdvance()
}

// beginResolve applies the already-resolved guard: exactly one of
// {input, collision, timeout} may resolve a round.
func (e *Engine) beginResolve() bool {
	if e.state != StatePlaying || e.resolved {
		return false
	}
	e.resolved = true
	e.cancelExpiry()
	return true
}

// scheduleAdvance enters the timed feedback pause and schedules the
// transition to the next round or to finished.
func (e *Engine) scheduleAdvance() {
	e.state = StatePaused
	if e.cancelAdvance != nil {
		e.cancelAdvance()
	}
	e.cancelAdvance = e.sched.AfterFunc(e.cfg.FeedbackDelay, e.onAdvance)
}

// onAdvance is the feedback timer callback.
func (e *Engine) onAdvance() {
	if e.state != StatePaused {
		return
	}
	if e.manualPause {
		e.advanceQueued = true
		return
	}
	e.advance()
}

func (e *Engine) advance() {
	e.cancelTimers()
	switch {
	case e.lives <= 0:
		e.finish(FinishLives)
	case e.round >= len(e.terms)-1:
		e.finish(FinishCompleted)
	default:
		e.state = StatePlaying
		e.setupRound(e.round + 1)
	}
}

// setupRound activates terms[i]: resets the guard and timing baseline,
// rebuilds the board, and arms the expiry timer for the new round.
func (e *Engine) setupRound(i int) {
	e.cancelTimers()
	e.round = i
	e.resolved = false
	e.roundStart = e.now()
	if e.board != nil {
		e.board.SetupRound(e.terms[i], e.CurrentTier())
	}
	e.scheduleExpiry()
}

func (e *Engine) scheduleExpiry() {
	e.cancelExpiry()
	show := e.CurrentTier().ShowTime
	if show <= 0 {
		return
	}
	e.cancelExpire = e.sched.AfterFunc(show, func() {
		e.HandleMistake(MistakeTimeout, NoSelectionLabel)
	})
}

func (e *Engine) finish(reason FinishReason) {
	e.cancelTimers()
	e.state = StateFinished
	e.finishReason = reason
}

func (e *Engine) cancelTimers() {
	if e.cancelAdvance != nil {
		e.cancelAdvance()
		e.cancelAdvance = nil
	}
	e.cancelExpiry()
}

func (e *Engine) cancelExpiry() {
	if e.cancelExpire != nil {
		e.cancelExpire()
		e.cancelExpire = nil
	}
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// FinishReason returns why the game ended; empty until finished.
func (e *Engine) FinishReason() FinishReason { return e.finishReason }

// Round returns the zero-based current round index.
func (e *Engine) Round() int { return e.round }

// TotalRounds returns the number of rounds in the game.
func (e *Engine) TotalRounds() int { return len(e.terms) }

// CurrentTerm returns the active prompt.
func (e *Engine) CurrentTerm() terms.GameTerm { return e.terms[e.round] }

// CurrentTier returns the active difficulty tier.
func (e *Engine) CurrentTier() Tier { return e.cfg.Tiers[e.tier] }

// TierIndex returns the active tier's position on the ladder.
func (e *Engine) TierIndex() int { return e.tier }

// Score returns the accumulated score.
func (e *Engine) Score() int { return e.score }

// Streak returns the current streak.
func (e *Engine) Streak() int { return e.streak }

// MaxStreak returns the best streak of the game.
func (e *Engine) MaxStreak() int { return e.maxStreak }

// Lives returns the remaining lives.
func (e *Engine) Lives() int { return e.lives }

// MaxLives returns the configured starting lives.
func (e *Engine) MaxLives() int { return e.cfg.Lives }

// Language returns the language the game runs in.
func (e *Engine) Language() string { return e.language }

// Results returns the round history so far.
func (e *Engine) Results() []RoundResult { return e.results }

// Resolved reports whether the current round has already been resolved
// and is waiting out the feedback pause.
func (e *Engine) Resolved() bool { return e.resolved }
