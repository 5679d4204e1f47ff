package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Booking event types.
const (
	BookingPaid        = "booking.paid"
	BookingToggled     = "booking.flag_toggled"
	BookingCancelled   = "booking.cancelled"
	BookingDeleted     = "booking.deleted"
	BookingsImported   = "bookings.imported"
	ChannelsClassified = "bookings.channels_classified"
)

type BookingEvent struct {
	Type          string      `json:"type"`
	BookingNumber string      `json:"booking_number,omitempty"`
	Data          interface{} `json:"data,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// Publisher emits booking events. Delivery order is not guaranteed.
type Publisher interface {
	Publish(ctx context.Context, ev BookingEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: NewKafkaWriter(brokers, topic)}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev BookingEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", ev.Type, err)
	}

	key := ev.Type
	if ev.BookingNumber != "" {
		key = "booking-" + ev.BookingNumber
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", ev.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }
