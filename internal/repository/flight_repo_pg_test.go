package repository

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvasilenko/flightops/internal/domain"
	"github.com/mvasilenko/flightops/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlightRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewFlightRepository(pool)
	assert.NotNil(t, repo)
}

func TestBuildListQuery_MatchAll(t *testing.T) {
	query, args, err := buildListQuery(search.Filter{})

	require.NoError(t, err)
	assert.Equal(t, `SELECT `+flightColumns+` FROM flights ORDER BY id`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_RouteOnly(t *testing.T) {
	filter := search.Filter{
		Route: &search.Route{DepartureAirportID: "DEL", ArrivalAirportID: "BOM"},
	}

	query, args, err := buildListQuery(filter)

	require.NoError(t, err)
	assert.Equal(t, `SELECT `+flightColumns+` FROM flights WHERE departure_airport_id=$1 AND arrival_airport_id=$2 ORDER BY id`, query)
	assert.Equal(t, []any{"DEL", "BOM"}, args)
}

func TestBuildListQuery_AllFacets(t *testing.T) {
	travelers := 3
	from := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 14, 23, 59, 0, 0, time.UTC)
	filter := search.Filter{
		Route:        &search.Route{DepartureAirportID: "DEL", ArrivalAirportID: "BOM"},
		Price:        &search.PriceRange{Min: 100, Max: 20000},
		MinTravelers: &travelers,
		Departure:    &search.TimeWindow{From: from, To: to},
		Sort: []search.SortKey{
			{Field: "price"},
			{Field: "departureTime", Desc: true},
		},
	}

	query, args, err := buildListQuery(filter)

	require.NoError(t, err)
	assert.Contains(t, query, "departure_airport_id=$1")
	assert.Contains(t, query, "arrival_airport_id=$2")
	assert.Contains(t, query, "price BETWEEN $3 AND $4")
	assert.Contains(t, query, "total_seats >= $5")
	assert.Contains(t, query, "departure_time BETWEEN $6 AND $7")
	assert.Contains(t, query, "ORDER BY price ASC, departure_time DESC")
	assert.Equal(t, []any{"DEL", "BOM", 100.0, 20000.0, 3, from, to}, args)
}

func TestBuildListQuery_PlaceholdersRenumberPerFacetSet(t *testing.T) {
	travelers := 2
	filter := search.Filter{
		Price:        &search.PriceRange{Min: 500, Max: 4500},
		MinTravelers: &travelers,
	}

	query, args, err := buildListQuery(filter)

	require.NoError(t, err)
	assert.Equal(t, `SELECT `+flightColumns+` FROM flights WHERE price BETWEEN $1 AND $2 AND total_seats >= $3 ORDER BY id`, query)
	assert.Equal(t, []any{500.0, 4500.0, 2}, args)
}

// A sort key that skipped ParseSort must not reach the store.
func TestBuildListQuery_RejectsUnknownSortField(t *testing.T) {
	_, _, err := buildListQuery(search.Filter{
		Sort: []search.SortKey{{Field: "id; DROP TABLE flights"}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
