package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	resSvc := NewReservationService(db)
	dashSvc := NewDashboardService(db)

	roomA := seedRoom(t, db, "101")
	roomB := seedRoom(t, db, "102")
	seedRoom(t, db, "103")
	guest := seedGuest(t, db, "John Doe")

	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	// Arriving today, still confirmed.
	seedReservation(t, resSvc, guest.ID, roomA.ID,
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC))

	// In house, leaving today.
	inHouse := seedReservation(t, resSvc, guest.ID, roomB.ID,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	_, err := resSvc.CheckIn(inHouse.ID)
	require.NoError(t, err)

	stats, err := dashSvc.Stats(now)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalRooms)
	assert.Equal(t, int64(2), stats.AvailableRooms)
	assert.Equal(t, int64(1), stats.OccupiedRooms)
	assert.Equal(t, int64(2), stats.TotalReservations)
	assert.Equal(t, int64(1), stats.TodayCheckins)
	assert.Equal(t, int64(1), stats.TodayCheckouts)
	assert.Equal(t, int64(1), stats.CurrentGuests)
	// Revenue only counts stays that reached the property.
	assert.InDelta(t, 720, stats.Revenue, 0.001)
	assert.InDelta(t, 33.33, stats.OccupancyRate, 0.001)
}

func TestDashboardStats_Empty(t *testing.T) {
	db := setupTestDB(t)
	dashSvc := NewDashboardService(db)

	stats, err := dashSvc.Stats(time.Now())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalRooms)
	assert.Zero(t, stats.Revenue)
	assert.Zero(t, stats.OccupancyRate)
}
