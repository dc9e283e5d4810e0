package usecase

import (
	"context"

	"github.com/google/uuid"
)

const (
	RunStatusRunning  = "running"
	RunStatusFinished = "finished"
	RunStatusFailed   = "failed"
)

// RunRecorder keeps an audit trail of searches and skipped cards.
type RunRecorder interface {
	StartRun(ctx context.Context, searchURL string, query string) (uuid.UUID, error)
	LogRun(ctx context.Context, runID uuid.UUID, level string, message string) error
	FinishRun(ctx context.Context, runID uuid.UUID, status string, listings int, skipped int) error
}

// SearchNotifier is told about every completed search.
type SearchNotifier interface {
	NotifySearchCompleted(query string, searchURL string, listings int, skipped int)
}
