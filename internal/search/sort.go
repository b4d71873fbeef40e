package search

import (
	"fmt"
	"strings"

	"github.com/mvasilenko/flightops/internal/domain"
)

// SortKey is one (field, direction) instruction. Order within a []SortKey
// defines tie-break precedence: first key primary, second key secondary.
type SortKey struct {
	Field string
	Desc  bool
}

// sortColumns whitelists the sortable flight attributes and maps them to
// table columns. Anything outside this map never reaches the store.
var sortColumns = map[string]string{
	"price":          "price",
	"departureTime":  "departure_time",
	"arrivalTime":    "arrival_time",
	"flightNumber":   "flight_number",
	"totalSeats":     "total_seats",
	"remainingSeats": "remaining_seats",
}

// ParseSort parses a raw sort spec like "price_asc,departureTime_desc".
// An unknown field fails the whole spec; a missing or unrecognized
// direction falls back to ascending.
func ParseSort(raw string) ([]SortKey, error) {
	entries := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(entries))
	for _, entry := range entries {
		field, dir, _ := strings.Cut(entry, "_")
		if _, ok := sortColumns[field]; !ok {
			return nil, fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidFilter, field)
		}
		keys = append(keys, SortKey{Field: field, Desc: dir == "desc"})
	}
	return keys, nil
}

// OrderBy renders sort keys as an ORDER BY fragment in caller precedence
// order. Field names are validated against the column whitelist again here:
// this is the string that actually reaches the store, so it cannot trust
// that the keys came from ParseSort.
func OrderBy(keys []SortKey) (string, error) {
	if len(keys) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		col, ok := sortColumns[k.Field]
		if !ok {
			return "", fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidFilter, k.Field)
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	return strings.Join(parts, ", "), nil
}
