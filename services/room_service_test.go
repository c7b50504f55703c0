package services

import (
	"testing"

	"hotel-pms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomService_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)

	room, err := svc.Create(CreateRoomInput{
		Number:    "101",
		Name:      "Standard Room",
		Type:      models.RoomTypeSingle,
		Capacity:  1,
		Price:     120,
		Amenities: []string{"Free Wi-Fi", "LED TV"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, room.Status)

	loaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, "101", loaded.Number)
	assert.JSONEq(t, `["Free Wi-Fi","LED TV"]`, string(loaded.Amenities))
}

func TestRoomService_CreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)

	_, err := svc.Create(CreateRoomInput{Name: "No number", Type: models.RoomTypeSingle, Capacity: 1, Price: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(CreateRoomInput{Number: "101", Name: "Bad type", Type: "LOFT", Capacity: 1, Price: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRoomService_DuplicateNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)
	seedRoom(t, db, "101")

	_, err := svc.Create(CreateRoomInput{
		Number: "101", Name: "Copy", Type: models.RoomTypeDouble, Capacity: 2, Price: 150,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRoomService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)
	room := seedRoom(t, db, "103")

	// Housekeeping re-lists a cleaned room through the staff edit path.
	status := models.RoomAvailable
	_, err := svc.Update(room.ID, UpdateRoomInput{Status: &status})
	require.NoError(t, err)

	loaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, loaded.Status)

	bad := models.RoomStatus("BROKEN")
	_, err = svc.Update(room.ID, UpdateRoomInput{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRoomService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db)
	room := seedRoom(t, db, "101")

	assert.ErrorIs(t, svc.Delete(room.ID, models.RoleReceptionist), ErrForbidden)
	require.NoError(t, svc.Delete(room.ID, models.RoleAdministrator))

	_, err := svc.GetByID(room.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
