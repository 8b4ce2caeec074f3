package worker

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/huellas-salud/vet-api/pkg/logger"
	"github.com/huellas-salud/vet-api/pkg/messaging"
)

// EventSubscriber drains lifecycle events off the broker and logs them.
// It is the audit trail for bookings and announcement transitions.
type EventSubscriber struct {
	broker    messaging.Broker
	logger    *logger.Logger
	processed *prometheus.CounterVec
}

func NewEventSubscriber(broker messaging.Broker, l *logger.Logger, processed *prometheus.CounterVec) *EventSubscriber {
	return &EventSubscriber{broker: broker, logger: l, processed: processed}
}

// Run consumes the given channels until the context is cancelled.
func (s *EventSubscriber) Run(ctx context.Context, channels ...string) error {
	for _, channel := range channels {
		msgs, err := s.broker.Subscribe(ctx, channel)
		if err != nil {
			return err
		}
		go s.consume(ctx, channel, msgs)
	}

	<-ctx.Done()
	return nil
}

func (s *EventSubscriber) consume(ctx context.Context, channel string, msgs <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			s.handle(channel, msg)
		}
	}
}

func (s *EventSubscriber) handle(channel string, msg []byte) {
	var event messaging.Event
	if err := json.Unmarshal(msg, &event); err != nil {
		s.logger.Error(err, "dropping malformed event", map[string]interface{}{"channel": channel})
		return
	}

	if s.processed != nil {
		s.processed.WithLabelValues(event.Type).Inc()
	}
	s.logger.Info("event received", map[string]interface{}{
		"channel": channel,
		"type":    event.Type,
	})
}
