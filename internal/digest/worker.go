package digest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/notifications"
)

// Worker runs the pending-queue count on a cron schedule.
type Worker struct {
	counter   Counter
	publisher notifications.Publisher
	logger    *zap.Logger
	schedule  string

	cron    *cron.Cron
	mu      sync.Mutex
	entryID cron.EntryID
	now     func() time.Time
}

// NewWorker creates a digest worker. schedule accepts standard five-field
// cron expressions and descriptors such as "@every 15m".
func NewWorker(counter Counter, publisher notifications.Publisher, schedule string, logger *zap.Logger) *Worker {
	return &Worker{
		counter:   counter,
		publisher: publisher,
		logger:    logger,
		schedule:  schedule,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Start registers the job, runs it once immediately and starts the scheduler.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entryID, err := w.cron.AddFunc(w.schedule, func() {
		w.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", w.schedule, err)
	}
	w.entryID = entryID

	w.logger.Info("Starting digest worker", zap.String("schedule", w.schedule))
	w.RunOnce(ctx)
	w.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (w *Worker) Stop() {
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.logger.Info("Digest worker stopped")
}

// Next returns the time of the next scheduled run, or the zero time when the
// worker has not been started.
func (w *Worker) Next() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.entryID == 0 {
		return time.Time{}
	}
	return w.cron.Entry(w.entryID).Next
}

// RunOnce counts the queues and publishes a digest event. Failures are logged.
func (w *Worker) RunOnce(ctx context.Context) {
	summary, err := w.counter.CountPending(ctx)
	if err != nil {
		w.logger.Error("Failed to count pending queues", zap.Error(err))
		return
	}

	w.logger.Info("Pending queue digest",
		zap.Int64("pending_users", summary.PendingUsers),
		zap.Int64("pending_projects", summary.PendingProjects),
		zap.Int64("unanswered_questions", summary.UnansweredQuestions))

	event := notifications.NewDigestEvent(map[string]any{
		"pending_users":        summary.PendingUsers,
		"pending_projects":     summary.PendingProjects,
		"unanswered_questions": summary.UnansweredQuestions,
		"total":                summary.Total(),
	}, w.now())
	if err := w.publisher.Publish(ctx, event); err != nil {
		w.logger.Warn("Failed to publish digest", zap.Error(err))
	}
}
