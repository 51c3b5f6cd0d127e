package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameSession is one finished game's summary row.
type GameSession struct {
	ID           string
	Game         string // "snake" or "whack"
	Score        int
	MaxStreak    int
	Rounds       int
	Correct      int
	FinishReason string
	Language     string
	MaterialIDs  []string
	PlayedAt     time.Time
}

// SessionRepo persists finished game summaries.
type SessionRepo struct {
	db *sql.DB
}

// Save inserts a session summary. A missing id is assigned.
func (r *SessionRepo) Save(ctx context.Context, s *GameSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.PlayedAt.IsZero() {
		s.PlayedAt = time.Now().UTC()
	}

	ids, err := json.Marshal(s.MaterialIDs)
	if err != nil {
		return fmt.Errorf("encode material ids: %w", err)
	}

	query := `INSERT INTO game_sessions (id, game, score, max_streak, rounds, correct, finish_reason, language, material_ids, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.Game, s.Score, s.MaxStreak, s.Rounds, s.Correct,
		s.FinishReason, s.Language, string(ids), s.PlayedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving game session: %w", err)
	}
	return nil
}

// Recent returns the latest n sessions, newest first.
func (r *SessionRepo) Recent(ctx context.Context, n int) ([]GameSession, error) {
	query := `SELECT id, game, score, max_streak, rounds, correct, finish_reason, language, material_ids, played_at
		FROM game_sessions ORDER BY played_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("listing game sessions: %w", err)
	}
	defer rows.Close()

	var out []GameSession
	for rows.Next() {
		var s GameSession
		var ids, played string
		err := rows.Scan(&s.ID, &s.Game, &s.Score, &s.MaxStreak, &s.Rounds, &s.Correct,
			&s.FinishReason, &s.Language, &ids, &played)
		if err != nil {
			return nil, fmt.Errorf("scanning game session: %w", err)
		}
		if err := json.Unmarshal([]byte(ids), &s.MaterialIDs); err != nil {
			return nil, fmt.Errorf("decode material ids: %w", err)
		}
		s.PlayedAt, _ = time.Parse(time.RFC3339, played)
		out = append(out, s)
	}
	return out, rows.Err()
}

// BestScore returns the highest score recorded for a game, 0 when none.
func (r *SessionRepo) BestScore(ctx context.Context, game string) (int, error) {
	var best sql.NullInt64
	query := `SELECT MAX(score) FROM game_sessions WHERE game = ?`
	if err := r.db.QueryRowContext(ctx, query, game).Scan(&best); err != nil {
		return 0, fmt.Errorf("loading best score: %w", err)
	}
	return int(best.Int64), nil
}
