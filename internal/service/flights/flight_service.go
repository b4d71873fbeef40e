package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/mvasilenko/flightops/internal/domain"
	"github.com/mvasilenko/flightops/internal/repository"
	"github.com/mvasilenko/flightops/internal/search"
	"github.com/mvasilenko/flightops/internal/service/inventory"
)

type FlightUseCase interface {
	Search(ctx context.Context, params search.Params) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	AdjustSeats(ctx context.Context, flightID int64, seats int, op inventory.Op) (int, error)
}

type SeatLedger interface {
	Adjust(ctx context.Context, flightID int64, seats int, op inventory.Op) (int, error)
}

type FlightCache interface {
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	SetFlight(ctx context.Context, flight *domain.Flight) error
	InvalidateFlight(ctx context.Context, id int64) error
}

// FlightService composes the filter builder, the repository and the seat
// ledger. It holds no state of its own.
type FlightService struct {
	repo   repository.FlightRepository
	ledger SeatLedger
	cache  FlightCache
}

type CreateFlightInput struct {
	FlightNumber       string
	AirplaneID         int64
	DepartureAirportID string
	ArrivalAirportID   string
	DepartureTime      time.Time
	ArrivalTime        time.Time
	Price              float64
	TotalSeats         int
}

func NewFlightService(repo repository.FlightRepository, ledger SeatLedger, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, ledger: ledger, cache: cache}
}

// Search builds the filter from raw parameters and returns matching flights
// in the requested order. No matches is not an error: the result is an empty
// slice.
func (s *FlightService) Search(ctx context.Context, params search.Params) ([]domain.Flight, error) {
	filter, err := search.Build(params)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlight(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlight(ctx, flight)
	}
	return flight, nil
}

// Create stores a new flight with every seat still available.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		FlightNumber:       input.FlightNumber,
		AirplaneID:         input.AirplaneID,
		DepartureAirportID: input.DepartureAirportID,
		ArrivalAirportID:   input.ArrivalAirportID,
		DepartureTime:      input.DepartureTime,
		ArrivalTime:        input.ArrivalTime,
		Price:              input.Price,
		TotalSeats:         input.TotalSeats,
		RemainingSeats:     input.TotalSeats,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlight(ctx, id)
	}
	return nil
}

// AdjustSeats delegates to the inventory ledger and propagates its result
// unchanged.
func (s *FlightService) AdjustSeats(ctx context.Context, flightID int64, seats int, op inventory.Op) (int, error) {
	return s.ledger.Adjust(ctx, flightID, seats, op)
}

func (in CreateFlightInput) validate() error {
	switch {
	case in.FlightNumber == "":
		return fmt.Errorf("%w: flight number is required", domain.ErrInvalidRequest)
	case in.AirplaneID <= 0:
		return fmt.Errorf("%w: airplane id is required", domain.ErrInvalidRequest)
	case in.DepartureAirportID == "" || in.ArrivalAirportID == "":
		return fmt.Errorf("%w: departure and arrival airports are required", domain.ErrInvalidRequest)
	case in.DepartureAirportID == in.ArrivalAirportID:
		return fmt.Errorf("%w: departure and arrival airports must differ", domain.ErrInvalidRequest)
	case !in.ArrivalTime.After(in.DepartureTime):
		return fmt.Errorf("%w: arrival time must be after departure time", domain.ErrInvalidRequest)
	case in.Price < 0:
		return fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidRequest)
	case in.TotalSeats <= 0:
		return fmt.Errorf("%w: total seats must be positive", domain.ErrInvalidRequest)
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
