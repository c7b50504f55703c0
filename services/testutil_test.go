package services

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"hotel-pms/config"
	"hotel-pms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a file-backed SQLite database in the test's temp dir.
// _txlock=immediate makes transactions take the write lock at BEGIN, so
// concurrent writers serialize the same way MySQL row locks do in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func seedRoom(t *testing.T, db *gorm.DB, number string) *models.Room {
	t.Helper()

	amenities, err := json.Marshal([]string{"Free Wi-Fi", "LED TV"})
	require.NoError(t, err)

	room := &models.Room{
		Number:    number,
		Name:      "Room " + number,
		Type:      models.RoomTypeDouble,
		Capacity:  2,
		Price:     180,
		Amenities: datatypes.JSON(amenities),
		Status:    models.RoomAvailable,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedGuest(t *testing.T, db *gorm.DB, name string) *models.Guest {
	t.Helper()

	guest := &models.Guest{Name: name, Country: "Brazil"}
	require.NoError(t, db.Create(guest).Error)
	return guest
}

func seedReservation(t *testing.T, svc *ReservationService, guestID, roomID uint, checkIn, checkOut time.Time) *models.Reservation {
	t.Helper()

	reservation, err := svc.Create(CreateReservationInput{
		GuestID:    guestID,
		RoomID:     roomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     2,
		TotalPrice: 720,
	})
	require.NoError(t, err)
	return reservation
}
