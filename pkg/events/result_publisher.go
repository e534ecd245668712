package events

import (
	"context"
	"errors"

	"ai-pitch-evaluator-be/internal/pkg/logger"
)

// Sink delivers an event to a bus.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// ResultPublisher announces changes to stored results.
type ResultPublisher interface {
	PublishResultUpdated(ctx context.Context, userName string, messagesAdded int, scored bool)
	PublishPitchScored(ctx context.Context, userName, ideaName string, totalScore float64)
}

// BusResultPublisher logs delivery failures and never returns them. A nil
// sink turns every call into a no-op.
type BusResultPublisher struct {
	sink   Sink
	logger logger.ILogger
}

func NewResultPublisher(sink Sink, logger logger.ILogger) *BusResultPublisher {
	return &BusResultPublisher{sink: sink, logger: logger}
}

func (p *BusResultPublisher) PublishResultUpdated(ctx context.Context, userName string, messagesAdded int, scored bool) {
	p.publish(ctx, NewEvent(ResultUpdated, map[string]interface{}{
		"user_name":      userName,
		"messages_added": messagesAdded,
		"scored":         scored,
	}))
}

func (p *BusResultPublisher) PublishPitchScored(ctx context.Context, userName, ideaName string, totalScore float64) {
	p.publish(ctx, NewEvent(PitchScored, map[string]interface{}{
		"user_name":   userName,
		"idea_name":   ideaName,
		"total_score": totalScore,
	}))
}

func (p *BusResultPublisher) publish(ctx context.Context, evt BaseEvent) {
	if p == nil || p.sink == nil {
		return
	}
	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+evt.Type+" event", map[string]interface{}{
			"error":    err.Error(),
			"event_id": evt.ID,
		})
	}
}

type fanOut []Sink

// FanOut delivers each event to every non-nil sink and joins their errors.
// It returns nil when no sink remains.
func FanOut(sinks ...Sink) Sink {
	var out fanOut
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (f fanOut) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
