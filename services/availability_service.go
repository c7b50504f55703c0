package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-pms/models"

	"gorm.io/gorm"
)

// AvailabilityService answers whether a room is free for a candidate date
// range. It is a pure query layer: it never writes.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// IsAvailable reports whether roomID has no active reservation overlapping
// [checkIn, checkOut). excludeReservationID (0 = none) lets an edit skip the
// reservation being edited. A zero-length or inverted range is invalid input.
func (s *AvailabilityService) IsAvailable(roomID uint, checkIn, checkOut time.Time, excludeReservationID uint) (bool, error) {
	if !checkIn.Before(checkOut) {
		return false, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInput)
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
		}
		return false, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}

	return roomAvailable(s.DB, roomID, checkIn, checkOut, excludeReservationID)
}

// roomAvailable runs the overlap check on the given handle so callers can
// execute it inside their own transaction. Two half-open ranges [a,b) and
// [c,d) overlap iff a < d && c < b.
func roomAvailable(db *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeReservationID uint) (bool, error) {
	var count int64

	q := db.Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []models.ReservationStatus{models.ReservationConfirmed, models.ReservationCheckedIn}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)

	if excludeReservationID != 0 {
		q = q.Where("id <> ?", excludeReservationID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check availability for room %d: %w", roomID, err)
	}

	return count == 0, nil
}
