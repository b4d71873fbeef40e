package domain

import "time"

type Flight struct {
	ID                 int64
	FlightNumber       string
	AirplaneID         int64
	DepartureAirportID string
	ArrivalAirportID   string
	DepartureTime      time.Time
	ArrivalTime        time.Time
	Price              float64
	TotalSeats         int
	RemainingSeats     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
