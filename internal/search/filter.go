// Package search turns the loosely-structured flight query parameters into
// a validated filter and ordering that the repository can apply. Building a
// filter does no I/O; every malformed input fails with domain.ErrInvalidFilter
// before anything reaches the store.
package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mvasilenko/flightops/internal/domain"
)

// defaultMaxPrice caps an open-ended price range like "4500-".
const defaultMaxPrice = 20000

// Params are the raw query parameters of a flight search, exactly as they
// arrive on the wire. Empty string means the parameter was not given.
type Params struct {
	Trips     string // "DEL-BOM"
	Price     string // "1000-5000" or "1000-"
	Travelers string // "3"
	TripDate  string // "2026-09-14"
	Sort      string // "price_asc,departureTime_desc"
}

type Route struct {
	DepartureAirportID string
	ArrivalAirportID   string
}

type PriceRange struct {
	Min float64
	Max float64
}

// TimeWindow is an inclusive departure-time interval.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// Filter is the structured form of Params. A nil facet means the dimension
// is unconstrained; a zero Filter matches every flight. Present facets
// compose with AND.
type Filter struct {
	Route        *Route
	Price        *PriceRange
	MinTravelers *int
	Departure    *TimeWindow
	Sort         []SortKey
}

// Build validates and assembles a Filter from raw parameters.
func Build(p Params) (Filter, error) {
	var f Filter

	if p.Trips != "" {
		dep, arr, ok := strings.Cut(p.Trips, "-")
		if !ok || dep == "" || arr == "" {
			return Filter{}, fmt.Errorf("%w: trips must look like DEL-BOM, got %q", domain.ErrInvalidFilter, p.Trips)
		}
		f.Route = &Route{DepartureAirportID: dep, ArrivalAirportID: arr}
	}

	if p.Price != "" {
		pr, err := parsePriceRange(p.Price)
		if err != nil {
			return Filter{}, err
		}
		f.Price = pr
	}

	if p.Travelers != "" {
		n, err := strconv.Atoi(p.Travelers)
		if err != nil || n <= 0 {
			return Filter{}, fmt.Errorf("%w: travelers must be a positive integer, got %q", domain.ErrInvalidFilter, p.Travelers)
		}
		f.MinTravelers = &n
	}

	if p.TripDate != "" {
		day, err := time.Parse("2006-01-02", p.TripDate)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: tripDate must look like 2006-01-02, got %q", domain.ErrInvalidFilter, p.TripDate)
		}
		// The window ends at 23:59:00, not 23:59:59. The API this replaced
		// appended " 23:59:00" to the date, so the last minute of the day
		// never matched; existing clients rely on that boundary.
		f.Departure = &TimeWindow{
			From: day,
			To:   day.Add(23*time.Hour + 59*time.Minute),
		}
	}

	if p.Sort != "" {
		keys, err := ParseSort(p.Sort)
		if err != nil {
			return Filter{}, err
		}
		f.Sort = keys
	}

	return f, nil
}

func parsePriceRange(raw string) (*PriceRange, error) {
	minStr, maxStr, _ := strings.Cut(raw, "-")

	min, err := strconv.ParseFloat(minStr, 64)
	if err != nil || min < 0 {
		return nil, fmt.Errorf("%w: price minimum must be a non-negative number, got %q", domain.ErrInvalidFilter, minStr)
	}

	max := float64(defaultMaxPrice)
	if maxStr != "" {
		max, err = strconv.ParseFloat(maxStr, 64)
		if err != nil || max < 0 {
			return nil, fmt.Errorf("%w: price maximum must be a non-negative number, got %q", domain.ErrInvalidFilter, maxStr)
		}
	}

	if min > max {
		return nil, fmt.Errorf("%w: price range %q has minimum above maximum", domain.ErrInvalidFilter, raw)
	}

	return &PriceRange{Min: min, Max: max}, nil
}
