package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// SeatEvent is published after every committed seat adjustment so downstream
// consumers (notifications, analytics) see the inventory move.
type SeatEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	FlightID       int64     `json:"flight_id"`
	FlightNumber   string    `json:"flight_number"`
	Seats          int       `json:"seats"`
	RemainingSeats int       `json:"remaining_seats"`
	TotalSeats     int       `json:"total_seats"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const (
	EventSeatsReserved = "seats_reserved"
	EventSeatsReleased = "seats_released"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
