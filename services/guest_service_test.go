package services

import (
	"testing"

	"hotel-pms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuestService(db)

	guest, err := svc.Create(GuestInput{Name: "  John Doe  ", Email: "john@doe.com"})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", guest.Name)
	assert.Equal(t, "Brazil", guest.Country, "country defaults when absent")

	_, err = svc.Create(GuestInput{Email: "nameless@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGuestService_GetAllOrdered(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuestService(db)

	seedGuest(t, db, "Zara")
	seedGuest(t, db, "Alice")

	guests, err := svc.GetAll()
	require.NoError(t, err)
	require.Len(t, guests, 2)
	assert.Equal(t, "Alice", guests[0].Name)
	assert.Equal(t, "Zara", guests[1].Name)
}

func TestGuestService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuestService(db)
	guest := seedGuest(t, db, "John Doe")

	phone := "+55 11 99999-0000"
	updated, err := svc.Update(guest.ID, UpdateGuestInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "+55 11 99999-0000", updated.Phone)

	empty := ""
	_, err = svc.Update(guest.ID, UpdateGuestInput{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name := "Ghost"
	_, err = svc.Update(999, UpdateGuestInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuestService_UpdatePreservesAbsentFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuestService(db)

	guest, err := svc.Create(GuestInput{
		Name:  "Carlos Oliveira",
		Email: "carlos@example.com",
		Phone: "+55 11 91234-5678",
	})
	require.NoError(t, err)

	// A name-only patch must leave the stored contact fields alone.
	name := "Carlos de Oliveira"
	_, err = svc.Update(guest.ID, UpdateGuestInput{Name: &name})
	require.NoError(t, err)

	loaded, err := svc.GetByID(guest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos de Oliveira", loaded.Name)
	assert.Equal(t, "carlos@example.com", loaded.Email)
	assert.Equal(t, "+55 11 91234-5678", loaded.Phone)
}

func TestGuestService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuestService(db)
	guest := seedGuest(t, db, "John Doe")

	assert.ErrorIs(t, svc.Delete(guest.ID, models.RoleReceptionist), ErrForbidden)
	require.NoError(t, svc.Delete(guest.ID, models.RoleAdministrator))
	assert.ErrorIs(t, svc.Delete(guest.ID, models.RoleAdministrator), ErrNotFound)
}
