package game

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalund/glosor/internal/content"
	"github.com/evalund/glosor/internal/engine"
	"github.com/evalund/glosor/internal/router"
	"github.com/evalund/glosor/internal/screens/summary"
	"github.com/evalund/glosor/internal/store"
	"github.com/evalund/glosor/internal/ui/components"
	"github.com/evalund/glosor/internal/ui/theme"
)

// Deps are the shared collaborators both game screens need.
type Deps struct {
	Sessions *store.SessionRepo
	Mistakes *store.MistakeRepo
}

// finishGame persists the session summary and swaps the game screen for
// the summary screen.
func finishGame(deps Deps, game string, eng *engine.Engine, prep *content.Preparation) tea.Cmd {
	results := eng.Results()
	correct := 0
	for _, r := range results {
		if r.Correct {
			correct++
		}
	}

	best := 0
	var saveErr error
	if deps.Sessions != nil {
		ctx := context.Background()
		best, _ = deps.Sessions.BestScore(ctx, game)
		saveErr = deps.Sessions.Save(ctx, &store.GameSession{
			Game:         game,
			Score:        eng.Score(),
			MaxStreak:    eng.MaxStreak(),
			Rounds:       len(results),
			Correct:      correct,
			FinishReason: string(eng.FinishReason()),
			Language:     eng.Language(),
			MaterialIDs:  prep.MaterialIDs,
		})
	}

	sum := summary.New(summary.Result{
		Game:         game,
		Score:        eng.Score(),
		BestScore:    best,
		MaxStreak:    eng.MaxStreak(),
		Correct:      correct,
		Rounds:       len(results),
		FinishReason: eng.FinishReason(),
		Results:      results,
		SaveError:    saveErr,
	})
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}

// renderPrompt renders the round's definition prompt box.
func renderPrompt(eng *engine.Engine, width int) string {
	t := eng.CurrentTerm()
	prompt := theme.Prompt.Render("Find the word:") + "\n" +
		theme.Body.Render(t.Definition)
	return theme.Card.Width(width - 4).Render(prompt)
}

// renderFeedback renders the between-rounds feedback line, empty when
// the round is still live.
func renderFeedback(eng *engine.Engine) string {
	if !eng.Resolved() || eng.State() != engine.StatePaused {
		return ""
	}
	results := eng.Results()
	if len(results) == 0 {
		return ""
	}
	last := results[len(results)-1]

	if last.Correct {
		line := theme.Correct.Render("Correct! " + last.Term)
		if last.Example != "" {
			line += "\n" + theme.Hint.Render(last.Example)
		}
		return line
	}

	var msg string
	switch last.Reason {
	case engine.MistakeCollision:
		msg = "Ouch! The answer was: " + last.Term
	case engine.MistakeTimeout:
		msg = "Time's up! The answer was: " + last.Term
	default:
		msg = fmt.Sprintf("Not %q. The answer was: %s", last.Picked, last.Term)
	}
	return theme.Incorrect.Render(msg)
}

// renderStatus builds the header status: score, streak, lives.
func renderStatus(eng *engine.Engine) string {
	hearts := components.Lives(eng.Lives(), eng.MaxLives())
	return fmt.Sprintf("%d pts  ✦%d  %s", eng.Score(), eng.Streak(), hearts)
}

// renderPausedBanner renders the manual pause overlay.
func renderPausedBanner(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("PAUSED · press p to resume")
}

func renderRoundCounter(eng *engine.Engine) string {
	return theme.Subtitle.Render(
		fmt.Sprintf("Round %d/%d  ·  %s", eng.Round()+1, eng.TotalRounds(), eng.CurrentTier().Name))
}
