package search

import (
	"testing"
	"time"

	"github.com/mvasilenko/flightops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmptyParamsMatchesAll(t *testing.T) {
	f, err := Build(Params{})

	require.NoError(t, err)
	assert.Nil(t, f.Route)
	assert.Nil(t, f.Price)
	assert.Nil(t, f.MinTravelers)
	assert.Nil(t, f.Departure)
	assert.Empty(t, f.Sort)
}

func TestBuild_Trips(t *testing.T) {
	f, err := Build(Params{Trips: "DEL-BOM"})

	require.NoError(t, err)
	require.NotNil(t, f.Route)
	assert.Equal(t, "DEL", f.Route.DepartureAirportID)
	assert.Equal(t, "BOM", f.Route.ArrivalAirportID)
}

func TestBuild_TripsMalformed(t *testing.T) {
	for _, trips := range []string{"DELBOM", "-BOM", "DEL-"} {
		_, err := Build(Params{Trips: trips})
		assert.ErrorIs(t, err, domain.ErrInvalidFilter, "trips=%q", trips)
	}
}

func TestBuild_PriceRange(t *testing.T) {
	f, err := Build(Params{Price: "1000-4500"})

	require.NoError(t, err)
	require.NotNil(t, f.Price)
	assert.Equal(t, 1000.0, f.Price.Min)
	assert.Equal(t, 4500.0, f.Price.Max)
}

func TestBuild_PriceOpenEndedDefaultsMax(t *testing.T) {
	f, err := Build(Params{Price: "100-"})

	require.NoError(t, err)
	require.NotNil(t, f.Price)
	assert.Equal(t, 100.0, f.Price.Min)
	assert.Equal(t, 20000.0, f.Price.Max)
}

func TestBuild_PriceMalformed(t *testing.T) {
	for _, price := range []string{"500-100", "abc-100", "100-abc", "-100"} {
		_, err := Build(Params{Price: price})
		assert.ErrorIs(t, err, domain.ErrInvalidFilter, "price=%q", price)
	}
}

func TestBuild_Travelers(t *testing.T) {
	f, err := Build(Params{Travelers: "3"})

	require.NoError(t, err)
	require.NotNil(t, f.MinTravelers)
	assert.Equal(t, 3, *f.MinTravelers)
}

func TestBuild_TravelersMalformed(t *testing.T) {
	for _, travelers := range []string{"0", "-2", "three"} {
		_, err := Build(Params{Travelers: travelers})
		assert.ErrorIs(t, err, domain.ErrInvalidFilter, "travelers=%q", travelers)
	}
}

// The day window deliberately ends at 23:59:00: the previous implementation
// of this API appended " 23:59:00" to the date, so a departure in the final
// minute of the day never matched. Clients depend on the boundary as is.
func TestBuild_TripDateWindowExcludesLastMinute(t *testing.T) {
	f, err := Build(Params{TripDate: "2026-09-14"})

	require.NoError(t, err)
	require.NotNil(t, f.Departure)
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), f.Departure.From)
	assert.Equal(t, time.Date(2026, 9, 14, 23, 59, 0, 0, time.UTC), f.Departure.To)

	lastMinute := time.Date(2026, 9, 14, 23, 59, 30, 0, time.UTC)
	assert.True(t, lastMinute.After(f.Departure.To))
}

func TestBuild_TripDateMalformed(t *testing.T) {
	_, err := Build(Params{TripDate: "14-09-2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestBuild_SortPropagates(t *testing.T) {
	f, err := Build(Params{Sort: "price_asc,departureTime_desc"})

	require.NoError(t, err)
	require.Len(t, f.Sort, 2)
	assert.Equal(t, SortKey{Field: "price"}, f.Sort[0])
	assert.Equal(t, SortKey{Field: "departureTime", Desc: true}, f.Sort[1])
}

func TestBuild_SortUnknownField(t *testing.T) {
	_, err := Build(Params{Sort: "bogus_asc"})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestBuild_CombinedFacets(t *testing.T) {
	f, err := Build(Params{
		Trips:     "DEL-BOM",
		Price:     "100-",
		Travelers: "2",
		TripDate:  "2026-09-14",
		Sort:      "price_desc",
	})

	require.NoError(t, err)
	assert.NotNil(t, f.Route)
	assert.NotNil(t, f.Price)
	assert.NotNil(t, f.MinTravelers)
	assert.NotNil(t, f.Departure)
	assert.Len(t, f.Sort, 1)
}
