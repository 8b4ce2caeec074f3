package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Channels used by the clinic backend.
const (
	ChannelAppointments  = "vetapi.appointments"
	ChannelAnnouncements = "vetapi.announcements"
)

// Event is the envelope published on every channel.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
