package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akinankarali/upwork-job-api/internal/database"
	"github.com/akinankarali/upwork-job-api/internal/usecase"

	"github.com/google/uuid"
)

var errNilDB = errors.New("nil db")

// SearchRunRepository stores one search_runs row per search and one
// search_run_logs row per skipped card.
type SearchRunRepository struct {
	db  database.DB
	now func() time.Time
}

func NewSearchRunRepository(db database.DB) *SearchRunRepository {
	return &SearchRunRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *SearchRunRepository) StartRun(ctx context.Context, searchURL string, query string) (uuid.UUID, error) {
	if r == nil || r.db == nil {
		return uuid.Nil, errNilDB
	}
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO search_runs (id, search_url, query, started_at, status) VALUES ($1,$2,$3,$4,$5)`,
		id, searchURL, query, r.now(), usecase.RunStatusRunning,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *SearchRunRepository) LogRun(ctx context.Context, runID uuid.UUID, level string, message string) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	if runID == uuid.Nil {
		return nil
	}
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO search_run_logs (id, search_run_id, level, message) VALUES ($1,$2,$3,$4)`,
		uuid.New(), runID, level, message,
	)
	return err
}

func (r *SearchRunRepository) FinishRun(ctx context.Context, runID uuid.UUID, status string, listings int, skipped int) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	if runID == uuid.Nil {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE search_runs SET finished_at = $2, status = $3, listings = $4, skipped = $5 WHERE id = $1`,
		runID, r.now(), strings.TrimSpace(status), listings, skipped,
	)
	return err
}

// CountRuns reports how many searches finished with status.
func (r *SearchRunRepository) CountRuns(ctx context.Context, status string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errNilDB
	}
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM search_runs WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

var _ usecase.RunRecorder = (*SearchRunRepository)(nil)
