package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvasilenko/flightops/internal/domain"
	"github.com/mvasilenko/flightops/internal/search"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, filter search.Filter) ([]domain.Flight, error)
	// UpdateRemainingSeats commits candidate only if the stored count still
	// equals expected. Returns false on a lost race so the caller can re-read
	// and retry.
	UpdateRemainingSeats(ctx context.Context, id int64, expected, candidate int) (bool, error)
	Delete(ctx context.Context, id int64) error
}

const flightColumns = `id, flight_number, airplane_id, departure_airport_id, arrival_airport_id, departure_time, arrival_time, price, total_seats, remaining_seats, created_at, updated_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airplane_id, departure_airport_id, arrival_airport_id, departure_time, arrival_time, price, total_seats, remaining_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.AirplaneID, flight.DepartureAirportID, flight.ArrivalAirportID,
		flight.DepartureTime, flight.ArrivalTime, flight.Price, flight.TotalSeats, flight.RemainingSeats).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) List(ctx context.Context, filter search.Filter) ([]domain.Flight, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

// buildListQuery assembles the filtered SELECT: one WHERE clause per present
// facet, AND-joined, with $n placeholders numbered in append order, plus the
// resolved ORDER BY (primary-key order when no sort was asked for).
func buildListQuery(filter search.Filter) (string, []any, error) {
	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Route != nil {
		where = append(where, "departure_airport_id="+arg(filter.Route.DepartureAirportID))
		where = append(where, "arrival_airport_id="+arg(filter.Route.ArrivalAirportID))
	}
	if filter.Price != nil {
		where = append(where, "price BETWEEN "+arg(filter.Price.Min)+" AND "+arg(filter.Price.Max))
	}
	if filter.MinTravelers != nil {
		// Bounds total capacity, not seats left: the search answers whether
		// the flight can carry the party at all.
		where = append(where, "total_seats >= "+arg(*filter.MinTravelers))
	}
	if filter.Departure != nil {
		where = append(where, "departure_time BETWEEN "+arg(filter.Departure.From)+" AND "+arg(filter.Departure.To))
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	order, err := search.OrderBy(filter.Sort)
	if err != nil {
		return "", nil, err
	}
	if order == "" {
		order = "id"
	}
	query += " ORDER BY " + order

	return query, args, nil
}

func (r *PGFlightRepository) UpdateRemainingSeats(ctx context.Context, id int64, expected, candidate int) (bool, error) {
	res, err := r.db.Exec(ctx, `UPDATE flights SET remaining_seats=$1, updated_at=now() WHERE id=$2 AND remaining_seats=$3`, candidate, id, expected)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.AirplaneID, &f.DepartureAirportID, &f.ArrivalAirportID,
		&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.TotalSeats, &f.RemainingSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
