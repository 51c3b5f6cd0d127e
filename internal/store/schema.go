package store

import (
	"database/sql"
	"fmt"
)

// schema is applied on every open; all statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS materials (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		content     TEXT NOT NULL DEFAULT '',
		language    TEXT NOT NULL DEFAULT 'sv',
		concepts    TEXT NOT NULL DEFAULT '[]',
		flashcards  TEXT NOT NULL DEFAULT '[]',
		glossary    TEXT NOT NULL DEFAULT '[]',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mistakes (
		material_id TEXT NOT NULL,
		term_key    TEXT NOT NULL,
		term        TEXT NOT NULL,
		definition  TEXT NOT NULL DEFAULT '',
		language    TEXT NOT NULL DEFAULT 'sv',
		miss_count  INTEGER NOT NULL DEFAULT 0,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (material_id, term_key)
	)`,
	`CREATE TABLE IF NOT EXISTS game_sessions (
		id            TEXT PRIMARY KEY,
		game          TEXT NOT NULL,
		score         INTEGER NOT NULL,
		max_streak    INTEGER NOT NULL,
		rounds        INTEGER NOT NULL,
		correct       INTEGER NOT NULL,
		finish_reason TEXT NOT NULL,
		language      TEXT NOT NULL DEFAULT 'sv',
		material_ids  TEXT NOT NULL DEFAULT '[]',
		played_at     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profile (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mistakes_material ON mistakes (material_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_played ON game_sessions (played_at)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
