// Package messaging provides event publishers that do not need a broker.
package messaging

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"sketchddd/application/ports"
	"sketchddd/domain/events"
)

var _ ports.EventPublisher = (*LoggingPublisher)(nil)

// LoggingPublisher writes events to the log and keeps the most recent ones
// in memory. It backs local runs where ENABLE_EVENTS is off.
type LoggingPublisher struct {
	logger *zap.Logger
	keep   int

	mu     sync.Mutex
	recent []events.DomainEvent
}

// NewLoggingPublisher creates a publisher remembering up to keep events
func NewLoggingPublisher(logger *zap.Logger, keep int) *LoggingPublisher {
	return &LoggingPublisher{logger: logger, keep: keep}
}

// Publish logs a single event
func (p *LoggingPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Info("Domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Int("version", event.GetVersion()),
		zap.Time("timestamp", event.GetTimestamp()),
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.keep <= 0 {
		return nil
	}
	p.recent = append(p.recent, event)
	if over := len(p.recent) - p.keep; over > 0 {
		p.recent = append(p.recent[:0:0], p.recent[over:]...)
	}
	return nil
}

// PublishBatch logs events in order
func (p *LoggingPublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, e := range domainEvents {
		if err := p.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Recent returns the remembered events, oldest first
func (p *LoggingPublisher) Recent() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.DomainEvent(nil), p.recent...)
}
