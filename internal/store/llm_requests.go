package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/evalund/glosor/internal/llm"
)

// LLMRequestRepo implements llm.RequestLog over the llm_requests table.
type LLMRequestRepo struct {
	db *sql.DB
}

// LLMRequestRow is one logged call.
type LLMRequestRow struct {
	ID           int64
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// AppendLLMRequest records one LLM call.
func (r *LLMRequestRepo) AppendLLMRequest(ctx context.Context, rec llm.RequestRecord) error {
	query := `INSERT INTO llm_requests (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.Provider, rec.Model, rec.Purpose,
		rec.InputTokens, rec.OutputTokens, rec.LatencyMs,
		boolToInt(rec.Success), rec.ErrorMessage,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("appending llm request: %w", err)
	}
	return nil
}

// Recent returns the latest n logged calls, newest first.
func (r *LLMRequestRepo) Recent(ctx context.Context, n int) ([]LLMRequestRow, error) {
	query := `SELECT id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at
		FROM llm_requests ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("listing llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRow
	for rows.Next() {
		var row LLMRequestRow
		var success int
		var created string
		err := rows.Scan(&row.ID, &row.Provider, &row.Model, &row.Purpose,
			&row.InputTokens, &row.OutputTokens, &row.LatencyMs,
			&success, &row.ErrorMessage, &created)
		if err != nil {
			return nil, fmt.Errorf("scanning llm request: %w", err)
		}
		row.Success = success != 0
		row.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, row)
	}
	return out, rows.Err()
}

// TokenTotals sums input and output tokens across all logged calls.
func (r *LLMRequestRepo) TokenTotals(ctx context.Context) (input, output int, err error) {
	query := `SELECT COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0) FROM llm_requests`
	if err := r.db.QueryRowContext(ctx, query).Scan(&input, &output); err != nil {
		return 0, 0, fmt.Errorf("summing llm tokens: %w", err)
	}
	return input, output, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
