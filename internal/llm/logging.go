package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// RequestRecord captures one LLM call for the request log.
type RequestRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestLog receives a record for every LLM call. The store's
// llm_requests repository implements it; tests pass nil.
type RequestLog interface {
	AppendLLMRequest(ctx context.Context, rec RequestRecord) error
}

// LoggingProvider decorates a Provider, recording every call.
type LoggingProvider struct {
	inner Provider
	log   RequestLog
}

// WithLogging wraps a Provider with request logging. A nil log disables
// recording but keeps the decorator chain uniform.
func WithLogging(p Provider, log RequestLog) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	if l.log != nil {
		rec := RequestRecord{
			Provider:  l.inner.ModelID(),
			Model:     l.inner.ModelID(),
			Purpose:   PurposeFrom(ctx),
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   err == nil,
		}
		if resp != nil {
			rec.InputTokens = resp.Usage.InputTokens
			rec.OutputTokens = resp.Usage.OutputTokens
			rec.Model = resp.Model
		}
		if err != nil {
			rec.ErrorMessage = err.Error()
		}
		// A failed log write must not fail the request.
		if logErr := l.log.AppendLLMRequest(ctx, rec); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
