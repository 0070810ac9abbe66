package notifications

import (
	"context"

	"go.uber.org/zap"
)

// Publisher delivers audit events to one sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MultiPublisher fans an event out to every sink. Sink failures are logged
// and never returned, so a broken sink cannot fail an audit operation.
type MultiPublisher struct {
	sinks  []Publisher
	logger *zap.Logger
}

func NewMultiPublisher(logger *zap.Logger, sinks ...Publisher) *MultiPublisher {
	return &MultiPublisher{sinks: sinks, logger: logger}
}

// Add registers another sink. Not safe for use once publishing has started.
func (m *MultiPublisher) Add(sink Publisher) {
	m.sinks = append(m.sinks, sink)
}

func (m *MultiPublisher) Publish(ctx context.Context, event Event) error {
	for _, sink := range m.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			m.logger.Warn("Failed to publish audit event",
				zap.Error(err),
				zap.String("event_id", event.ID.String()),
				zap.String("type", string(event.Type)))
		}
	}
	return nil
}

// LogPublisher writes every event to the structured log.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID.String()),
		zap.String("type", string(event.Type)),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.Type == EventTypeTransition {
		fields = append(fields,
			zap.String("kind", event.Kind),
			zap.String("action", event.Action),
			zap.Int64("entity_id", event.EntityID),
			zap.String("status", event.Status),
			zap.Int64p("actor_id", event.ActorID))
	} else {
		fields = append(fields, zap.Any("data", event.Data))
	}
	p.logger.Info("Audit event", fields...)
	return nil
}
