package digest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"carbon-shop/marketplace-backend/internal/audit"
	"carbon-shop/marketplace-backend/internal/notifications"
)

type stubCounter struct {
	summary *audit.PendingSummary
	err     error
	calls   int
	mu      sync.Mutex
}

func (s *stubCounter) CountPending(context.Context) (*audit.PendingSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.summary, s.err
}

type capturePublisher struct {
	mu     sync.Mutex
	events []notifications.Event
}

func (p *capturePublisher) Publish(_ context.Context, e notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func TestRunOncePublishesDigest(t *testing.T) {
	counter := &stubCounter{summary: &audit.PendingSummary{PendingUsers: 2, PendingProjects: 1, UnansweredQuestions: 3}}
	publisher := &capturePublisher{}
	w := NewWorker(counter, publisher, "@every 1h", zap.NewNop())
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return at }

	w.RunOnce(context.Background())

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, notifications.EventTypeDigest, event.Type)
	assert.Equal(t, at, event.OccurredAt)
	assert.Equal(t, int64(6), event.Data["total"])
	assert.Equal(t, int64(3), event.Data["unanswered_questions"])
}

func TestRunOnceCountFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	counter := &stubCounter{err: errors.New("connection refused")}
	publisher := &capturePublisher{}
	w := NewWorker(counter, publisher, "@every 1h", zap.New(core))

	w.RunOnce(context.Background())

	assert.Empty(t, publisher.events)
	assert.Equal(t, 1, logs.FilterMessage("Failed to count pending queues").Len())
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	w := NewWorker(&stubCounter{}, &capturePublisher{}, "not a schedule", zap.NewNop())

	err := w.Start(context.Background())

	assert.Error(t, err)
	assert.True(t, w.Next().IsZero())
}

func TestStartRunsImmediatelyAndSchedules(t *testing.T) {
	counter := &stubCounter{summary: &audit.PendingSummary{}}
	publisher := &capturePublisher{}
	w := NewWorker(counter, publisher, "@every 1h", zap.NewNop())

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	assert.Equal(t, 1, counter.calls)
	assert.False(t, w.Next().IsZero())
}
