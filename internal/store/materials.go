package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evalund/glosor/internal/material"
)

// MaterialRepo persists study materials. The structured sections are
// stored as JSON columns; the repo satisfies the content preparer's
// material source contract, so a missing id returns nil, not an error.
type MaterialRepo struct {
	db *sql.DB
}

// Save inserts or updates a material. A missing id is assigned.
func (r *MaterialRepo) Save(ctx context.Context, m *material.Material) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	concepts, err := json.Marshal(m.Concepts)
	if err != nil {
		return fmt.Errorf("encode concepts: %w", err)
	}
	flashcards, err := json.Marshal(m.Flashcards)
	if err != nil {
		return fmt.Errorf("encode flashcards: %w", err)
	}
	glossary, err := json.Marshal(m.Glossary)
	if err != nil {
		return fmt.Errorf("encode glossary: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO materials (id, title, content, language, concepts, flashcards, glossary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			language = excluded.language,
			concepts = excluded.concepts,
			flashcards = excluded.flashcards,
			glossary = excluded.glossary,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		m.ID, m.Title, m.Content, m.Language,
		string(concepts), string(flashcards), string(glossary),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("saving material: %w", err)
	}
	return nil
}

// Material returns the material with the given id, or nil when absent.
func (r *MaterialRepo) Material(ctx context.Context, id string) (*material.Material, error) {
	query := `SELECT id, title, content, language, concepts, flashcards, glossary
		FROM materials WHERE id = ?`
	m, err := scanMaterial(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// Materials returns every stored material, newest first.
func (r *MaterialRepo) Materials(ctx context.Context) ([]*material.Material, error) {
	query := `SELECT id, title, content, language, concepts, flashcards, glossary
		FROM materials ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()

	var out []*material.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes a material and its mistake history.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mistakes WHERE material_id = ?`, id); err != nil {
		return fmt.Errorf("deleting material mistakes: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM materials WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting material: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (*material.Material, error) {
	var m material.Material
	var concepts, flashcards, glossary string

	err := row.Scan(&m.ID, &m.Title, &m.Content, &m.Language, &concepts, &flashcards, &glossary)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning material: %w", err)
	}

	if err := json.Unmarshal([]byte(concepts), &m.Concepts); err != nil {
		return nil, fmt.Errorf("decode concepts: %w", err)
	}
	if err := json.Unmarshal([]byte(flashcards), &m.Flashcards); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w", err)
	}
	if err := json.Unmarshal([]byte(glossary), &m.Glossary); err != nil {
		return nil, fmt.Errorf("decode glossary: %w", err)
	}
	return &m, nil
}
