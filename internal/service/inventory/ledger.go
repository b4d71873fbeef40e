// Package inventory owns the remaining-seat count of every flight. No other
// component writes it; callers that need to move seats go through
// Ledger.Adjust.
package inventory

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mvasilenko/flightops/internal/domain"
	"github.com/mvasilenko/flightops/internal/kafka"
	"github.com/mvasilenko/flightops/internal/repository"
)

// Op is the direction of a seat adjustment.
type Op string

const (
	OpReserve Op = "reserve" // booking: decrement remaining seats
	OpRelease Op = "release" // cancellation: increment remaining seats
)

const defaultMaxAttempts = 5

type Cache interface {
	InvalidateFlight(ctx context.Context, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Ledger serializes seat adjustments per flight with optimistic concurrency:
// read the count, compute and guard the candidate, then commit it with a
// conditional update that only applies if the stored count is still the one
// read. A lost race re-reads and retries up to maxAttempts. Adjustments on
// different flights never contend with each other.
type Ledger struct {
	flights     repository.FlightRepository
	cache       Cache
	producer    Producer
	seatTopic   string
	maxAttempts int
}

type LedgerOption func(*Ledger)

func WithCache(cache Cache) LedgerOption {
	return func(l *Ledger) {
		l.cache = cache
	}
}

func WithProducer(producer Producer, topic string) LedgerOption {
	return func(l *Ledger) {
		l.producer = producer
		l.seatTopic = topic
	}
}

func WithMaxAttempts(n int) LedgerOption {
	return func(l *Ledger) {
		if n > 0 {
			l.maxAttempts = n
		}
	}
}

func NewLedger(flights repository.FlightRepository, opts ...LedgerOption) *Ledger {
	ledger := &Ledger{
		flights:     flights,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(ledger)
	}
	return ledger
}

// Adjust moves the remaining-seat count of a flight and returns the new
// value. A reserve that would drop the count below zero fails with
// domain.ErrNoSeats; a release that would push it above total capacity fails
// with domain.ErrSeatLimit. Neither writes anything. When concurrent
// adjustments on the same flight keep winning the conditional update, the
// retry budget runs out and the call fails with domain.ErrConflict.
func (l *Ledger) Adjust(ctx context.Context, flightID int64, seats int, op Op) (int, error) {
	if seats <= 0 {
		return 0, fmt.Errorf("%w: seats must be positive, got %d", domain.ErrInvalidRequest, seats)
	}

	for attempt := 0; attempt < l.maxAttempts; attempt++ {
		flight, err := l.flights.GetByID(ctx, flightID)
		if err != nil {
			return 0, err
		}

		var candidate int
		switch op {
		case OpReserve:
			candidate = flight.RemainingSeats - seats
			if candidate < 0 {
				return 0, fmt.Errorf("%w: %d requested, %d left on flight %d", domain.ErrNoSeats, seats, flight.RemainingSeats, flightID)
			}
		case OpRelease:
			candidate = flight.RemainingSeats + seats
			if candidate > flight.TotalSeats {
				return 0, fmt.Errorf("%w: release of %d would leave %d of %d seats on flight %d", domain.ErrSeatLimit, seats, candidate, flight.TotalSeats, flightID)
			}
		default:
			return 0, fmt.Errorf("%w: unknown adjustment %q", domain.ErrInvalidRequest, op)
		}

		committed, err := l.flights.UpdateRemainingSeats(ctx, flightID, flight.RemainingSeats, candidate)
		if err != nil {
			return 0, err
		}
		if committed {
			l.afterCommit(ctx, flight, seats, op, candidate)
			return candidate, nil
		}
		// Count moved between our read and write; take a fresh look.
	}

	return 0, fmt.Errorf("%w: flight %d", domain.ErrConflict, flightID)
}

// afterCommit publishes the seat event and drops the cached flight record.
// Both are best effort: the adjustment already committed and its outcome
// must not change here.
func (l *Ledger) afterCommit(ctx context.Context, flight *domain.Flight, seats int, op Op, remaining int) {
	if l.cache != nil {
		if err := l.cache.InvalidateFlight(ctx, flight.ID); err != nil {
			log.Printf("WARNING: invalidate cached flight %d: %v", flight.ID, err)
		}
	}

	if l.producer == nil || l.seatTopic == "" {
		return
	}
	eventType := kafka.EventSeatsReserved
	if op == OpRelease {
		eventType = kafka.EventSeatsReleased
	}
	event := kafka.SeatEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		FlightID:       flight.ID,
		FlightNumber:   flight.FlightNumber,
		Seats:          seats,
		RemainingSeats: remaining,
		TotalSeats:     flight.TotalSeats,
		OccurredAt:     time.Now(),
	}
	if err := l.producer.Publish(ctx, l.seatTopic, event.ID, event); err != nil {
		log.Printf("WARNING: publish %s event for flight %d: %v", eventType, flight.ID, err)
	}
}
