package search

import (
	"testing"

	"github.com/mvasilenko/flightops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort_PrecedenceOrder(t *testing.T) {
	keys, err := ParseSort("price_asc,departureTime_desc,flightNumber_asc")

	require.NoError(t, err)
	require.Len(t, keys, 3)
	assert.Equal(t, SortKey{Field: "price"}, keys[0])
	assert.Equal(t, SortKey{Field: "departureTime", Desc: true}, keys[1])
	assert.Equal(t, SortKey{Field: "flightNumber"}, keys[2])
}

func TestParseSort_DirectionDefaultsToAscending(t *testing.T) {
	for _, raw := range []string{"price", "price_", "price_sideways"} {
		keys, err := ParseSort(raw)
		require.NoError(t, err, "sort=%q", raw)
		require.Len(t, keys, 1)
		assert.False(t, keys[0].Desc, "sort=%q", raw)
	}
}

func TestParseSort_UnknownField(t *testing.T) {
	_, err := ParseSort("bogus_asc")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)

	_, err = ParseSort("price_asc,bogus_desc")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestOrderBy_RendersColumnsInOrder(t *testing.T) {
	keys, err := ParseSort("price_asc,departureTime_desc")
	require.NoError(t, err)

	order, err := OrderBy(keys)

	require.NoError(t, err)
	assert.Equal(t, "price ASC, departure_time DESC", order)
}

func TestOrderBy_EmptySpec(t *testing.T) {
	order, err := OrderBy(nil)

	require.NoError(t, err)
	assert.Equal(t, "", order)
}

// OrderBy is the last gate before the store, so it re-checks field names
// even for keys that never went through ParseSort.
func TestOrderBy_RejectsUnknownFieldDefensively(t *testing.T) {
	_, err := OrderBy([]SortKey{{Field: "id; DROP TABLE flights"}})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
