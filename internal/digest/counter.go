// Package digest periodically counts the mediator moderation queues and
// publishes the result as a digest event.
package digest

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"carbon-shop/marketplace-backend/internal/audit"
)

// Counter reports the current size of the pending queues.
type Counter interface {
	CountPending(ctx context.Context) (*audit.PendingSummary, error)
}

const pendingQuery = `
	SELECT
		(SELECT COUNT(*) FROM app_users WHERE status = 'INIT') AS pending_users,
		(SELECT COUNT(*) FROM projects WHERE status = 'INIT') AS pending_projects,
		(SELECT COUNT(*) FROM questions WHERE answer IS NULL) AS unanswered_questions
`

// SQLCounter counts the queues with a single round trip.
type SQLCounter struct {
	db *sqlx.DB
}

func NewSQLCounter(db *sqlx.DB) *SQLCounter {
	return &SQLCounter{db: db}
}

// Connect opens a postgres connection for the counter and verifies it.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *SQLCounter) CountPending(ctx context.Context) (*audit.PendingSummary, error) {
	var row struct {
		PendingUsers        int64 `db:"pending_users"`
		PendingProjects     int64 `db:"pending_projects"`
		UnansweredQuestions int64 `db:"unanswered_questions"`
	}
	if err := c.db.GetContext(ctx, &row, pendingQuery); err != nil {
		return nil, fmt.Errorf("failed to count pending queues: %w", err)
	}
	return &audit.PendingSummary{
		PendingUsers:        row.PendingUsers,
		PendingProjects:     row.PendingProjects,
		UnansweredQuestions: row.UnansweredQuestions,
	}, nil
}
