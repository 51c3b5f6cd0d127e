package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// MistakeRepo keeps the per-material miss counters that drive term
// prioritization. It satisfies both the engine's mistake sink and the
// content preparer's mistake source.
type MistakeRepo struct {
	db *sql.DB
}

// Mistake is one persisted miss counter.
type Mistake struct {
	MaterialID string
	Term       string
	Definition string
	Language   string
	MissCount  int
	UpdatedAt  time.Time
}

// RecordMistake increments the miss counter for a term, creating the
// row on first miss. Keys are lowercased term text per material.
func (r *MistakeRepo) RecordMistake(ctx context.Context, materialID, term, definition, language string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO mistakes (material_id, term_key, term, definition, language, miss_count, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(material_id, term_key) DO UPDATE SET
			miss_count = miss_count + 1,
			definition = excluded.definition,
			language = excluded.language,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		materialID, strings.ToLower(term), term, definition, language, now,
	)
	if err != nil {
		return fmt.Errorf("recording mistake: %w", err)
	}
	return nil
}

// MistakeWeights sums miss counts per lowercased term across the given
// materials.
func (r *MistakeRepo) MistakeWeights(ctx context.Context, materialIDs []string) (map[string]int, error) {
	if len(materialIDs) == 0 {
		return map[string]int{}, nil
	}

	placeholders := strings.Repeat("?,", len(materialIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT term_key, SUM(miss_count) FROM mistakes
		WHERE material_id IN (` + placeholders + `)
		GROUP BY term_key`

	args := make([]any, len(materialIDs))
	for i, id := range materialIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading mistake weights: %w", err)
	}
	defer rows.Close()

	weights := map[string]int{}
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scanning mistake weight: %w", err)
		}
		weights[key] = count
	}
	return weights, rows.Err()
}

// List returns every mistake row, most missed first.
func (r *MistakeRepo) List(ctx context.Context) ([]Mistake, error) {
	query := `SELECT material_id, term, definition, language, miss_count, updated_at
		FROM mistakes ORDER BY miss_count DESC, term`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing mistakes: %w", err)
	}
	defer rows.Close()

	var out []Mistake
	for rows.Next() {
		var m Mistake
		var updated string
		if err := rows.Scan(&m.MaterialID, &m.Term, &m.Definition, &m.Language, &m.MissCount, &updated); err != nil {
			return nil, fmt.Errorf("scanning mistake: %w", err)
		}
		m.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, m)
	}
	return out, rows.Err()
}
