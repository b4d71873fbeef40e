package email

import (
	"context"
	"fmt"

	"github.com/mvasilenko/flightops/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// NotifySoldOut alerts the operations inbox that a flight has no seats left.
func (s *Sender) NotifySoldOut(ctx context.Context, event kafka.SeatEvent) error {
	fmt.Printf("send email to ops: flight %s (%d) sold out, %d seats total\n", event.FlightNumber, event.FlightID, event.TotalSeats)
	return nil
}
