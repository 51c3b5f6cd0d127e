package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// DefaultGrade is the grade assumed before the user sets one.
const DefaultGrade = 7

// ProfileRepo stores small user settings as key-value rows.
type ProfileRepo struct {
	db *sql.DB
}

const (
	keyGrade = "grade"
	keyName  = "name"
)

// Grade returns the learner's grade level, or DefaultGrade when unset.
func (r *ProfileRepo) Grade(ctx context.Context) (int, error) {
	v, err := r.get(ctx, keyGrade)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return DefaultGrade, nil
	}
	grade, err := strconv.Atoi(v)
	if err != nil {
		return DefaultGrade, nil
	}
	return grade, nil
}

// SetGrade stores the learner's grade level.
func (r *ProfileRepo) SetGrade(ctx context.Context, grade int) error {
	return r.set(ctx, keyGrade, strconv.Itoa(grade))
}

// Name returns the learner's display name, or "" when unset.
func (r *ProfileRepo) Name(ctx context.Context) (string, error) {
	return r.get(ctx, keyName)
}

// SetName stores the learner's display name.
func (r *ProfileRepo) SetName(ctx context.Context, name string) error {
	return r.set(ctx, keyName, name)
}

func (r *ProfileRepo) get(ctx context.Context, key string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM profile WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading profile %s: %w", key, err)
	}
	return v, nil
}

func (r *ProfileRepo) set(ctx context.Context, key, value string) error {
	query := `INSERT INTO profile (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("saving profile %s: %w", key, err)
	}
	return nil
}
