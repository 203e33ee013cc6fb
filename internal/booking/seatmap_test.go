package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeatsDefaultLayout(t *testing.T) {
	seats := GenerateSeats(DefaultLayout)

	require.Len(t, seats, 80)
	assert.Equal(t, 12, DefaultLayout.Rows())

	// Identities are unique and sequential from 1.
	for i, s := range seats {
		assert.Equal(t, uint64(i+1), s.ID)
		assert.False(t, s.IsBooked)
		assert.Nil(t, s.BookedBy)
	}

	// First row.
	assert.Equal(t, uint32(1), seats[0].Row)
	assert.Equal(t, "1A", seats[0].SeatNumber)
	assert.Equal(t, "1G", seats[6].SeatNumber)

	// Partial last row: 11 full rows of 7, then 3 seats in row 12.
	assert.Equal(t, uint32(12), seats[79].Row)
	assert.Equal(t, "12C", seats[79].SeatNumber)
	assert.Equal(t, "12A", seats[77].SeatNumber)
}

func TestGenerateSeatsRowFill(t *testing.T) {
	l := Layout{TotalSeats: 10, SeatsPerRow: 4, LastRowSeats: 2, MaxSelection: 3}
	seats := GenerateSeats(l)

	require.Len(t, seats, 10)
	assert.Equal(t, 3, l.Rows())

	perRow := map[uint32]int{}
	for _, s := range seats {
		perRow[s.Row]++
	}
	assert.Equal(t, map[uint32]int{1: 4, 2: 4, 3: 2}, perRow)
	assert.Equal(t, "3B", seats[9].SeatNumber)
}
