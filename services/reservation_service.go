package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-pms/models"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationService owns the reservation lifecycle and keeps the room status
// in sync on transitions. All mutation goes through transactions; no other
// code path may flip Room.Status as a reservation side effect.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type CreateReservationInput struct {
	GuestID  uint      `json:"guestId"`
	RoomID   uint      `json:"roomId"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`

	Adults     int     `json:"adults"`
	Children   int     `json:"children"`
	TotalPrice float64 `json:"totalPrice"`

	PaymentStatus   models.PaymentStatus `json:"paymentStatus"`
	Source          string               `json:"source"`
	Notes           string               `json:"notes"`
	SpecialRequests string               `json:"specialRequests"`
}

// UpdateReservationInput carries a partial patch: nil fields are left
// unchanged.
type UpdateReservationInput struct {
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut"`

	Adults     *int     `json:"adults"`
	Children   *int     `json:"children"`
	TotalPrice *float64 `json:"totalPrice"`

	Status        *models.ReservationStatus `json:"status"`
	PaymentStatus *models.PaymentStatus     `json:"paymentStatus"`

	Source          *string `json:"source"`
	Notes           *string `json:"notes"`
	SpecialRequests *string `json:"specialRequests"`
}

func newReferenceCode() string {
	return "RSV-" + strings.ToUpper(uuid.NewString()[:8])
}

// isConflictErr reports whether the store rejected a write because of a
// concurrent-writer race (deadlock, lock wait timeout, duplicate key).
func isConflictErr(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062, 1205, 1213:
			return true
		}
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "database is locked") ||
		strings.Contains(lc, "unique constraint") ||
		strings.Contains(lc, "duplicate")
}

func (in CreateReservationInput) validate() error {
	if in.GuestID == 0 || in.RoomID == 0 {
		return fmt.Errorf("%w: guest and room are required", ErrInvalidInput)
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out are required", ErrInvalidInput)
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInput)
	}
	if in.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
	}
	if in.Children < 0 {
		return fmt.Errorf("%w: children must not be negative", ErrInvalidInput)
	}
	if in.TotalPrice <= 0 {
		return fmt.Errorf("%w: total price must be positive", ErrInvalidInput)
	}
	if in.PaymentStatus != "" && !in.PaymentStatus.IsValid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, in.PaymentStatus)
	}
	return nil
}

// Create validates the input, re-checks availability inside the transaction
// holding a lock on the room row, and inserts the reservation as CONFIRMED.
// The room status is untouched: a confirmed reservation does not occupy the
// room until check-in, and the room stays bookable for other date ranges.
func (s *ReservationService) Create(input CreateReservationInput) (*models.Reservation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := s.DB.First(&guest, input.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guest %d", ErrNotFound, input.GuestID)
		}
		return nil, fmt.Errorf("failed to load guest %d: %w", input.GuestID, err)
	}

	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}

	reservation := models.Reservation{
		ReferenceCode:   newReferenceCode(),
		GuestID:         input.GuestID,
		RoomID:          input.RoomID,
		CheckIn:         input.CheckIn,
		CheckOut:        input.CheckOut,
		Adults:          input.Adults,
		Children:        input.Children,
		TotalPrice:      input.TotalPrice,
		Status:          models.ReservationConfirmed,
		PaymentStatus:   paymentStatus,
		Source:          input.Source,
		Notes:           input.Notes,
		SpecialRequests: input.SpecialRequests,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the room row so two concurrent creates for the same room
		// serialize their check-then-insert.
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, input.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, input.RoomID)
			}
			return fmt.Errorf("failed to load room %d: %w", input.RoomID, err)
		}

		free, err := roomAvailable(tx, input.RoomID, input.CheckIn, input.CheckOut, 0)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("%w: room %s is booked in the requested period", ErrRoomUnavailable, room.Number)
		}

		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if isConflictErr(txErr) &&
			!errors.Is(txErr, ErrNotFound) && !errors.Is(txErr, ErrRoomUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, txErr)
		}
		return nil, txErr
	}

	return s.GetByID(reservation.ID)
}

// GetByID loads a reservation with its guest and room.
func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Guest").Preload("Room").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load reservation %d: %w", id, err)
	}
	return &reservation, nil
}

// GetAllWithRelations returns every reservation, newest check-in first.
func (s *ReservationService) GetAllWithRelations() ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.
		Preload("Guest").
		Preload("Room").
		Order("check_in DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}

// transition moves a locked reservation to target and applies the matching
// room status inside the same transaction. Caller supplies the tx.
func transition(tx *gorm.DB, reservation *models.Reservation, target models.ReservationStatus) error {
	if !reservation.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: cannot go from %s to %s", ErrInvalidTransition, reservation.Status, target)
	}

	if err := tx.Model(reservation).Update("status", target).Error; err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	// Room side effects: check-in occupies the room, check-out sends it to
	// cleaning. The lifecycle never returns a room directly to AVAILABLE;
	// housekeeping re-lists it after cleaning. Cancel and no-show leave the
	// room alone: it was never occupied for a reservation that never
	// checked in.
	var roomStatus models.RoomStatus
	switch target {
	case models.ReservationCheckedIn:
		roomStatus = models.RoomOccupied
	case models.ReservationCheckedOut:
		roomStatus = models.RoomCleaning
	default:
		return nil
	}

	res := tx.Model(&models.Room{}).
		Where("id = ?", reservation.RoomID).
		Update("status", roomStatus)
	if res.Error != nil {
		return fmt.Errorf("failed to update room %d status: %w", reservation.RoomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ErrNotFound, reservation.RoomID)
	}
	return nil
}

func (s *ReservationService) applyTransition(id uint, target models.ReservationStatus) (*models.Reservation, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reservation %d", ErrNotFound, id)
			}
			return fmt.Errorf("failed to load reservation %d: %w", id, err)
		}
		return transition(tx, &reservation, target)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Printf("reservation %d moved to %s", id, target)
	return s.GetByID(id)
}

// CheckIn moves a CONFIRMED reservation to CHECKED_IN and the room to
// OCCUPIED as one unit.
func (s *ReservationService) CheckIn(id uint) (*models.Reservation, error) {
	return s.applyTransition(id, models.ReservationCheckedIn)
}

// CheckOut moves a CHECKED_IN reservation to CHECKED_OUT and the room to
// CLEANING as one unit.
func (s *ReservationService) CheckOut(id uint) (*models.Reservation, error) {
	return s.applyTransition(id, models.ReservationCheckedOut)
}

// Cancel is only legal from CONFIRMED.
func (s *ReservationService) Cancel(id uint) (*models.Reservation, error) {
	return s.applyTransition(id, models.ReservationCancelled)
}

// MarkNoShow is only legal from CONFIRMED.
func (s *ReservationService) MarkNoShow(id uint) (*models.Reservation, error) {
	return s.applyTransition(id, models.ReservationNoShow)
}

// Update applies a partial patch. A status change through the patch honors
// the state machine and room side effects exactly like the dedicated
// endpoints; a date change on an active reservation re-validates
// availability excluding the reservation itself.
func (s *ReservationService) Update(id uint, patch UpdateReservationInput) (*models.Reservation, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reservation %d", ErrNotFound, id)
			}
			return fmt.Errorf("failed to load reservation %d: %w", id, err)
		}

		updates := map[string]interface{}{}

		checkIn := reservation.CheckIn
		checkOut := reservation.CheckOut
		datesChanged := false
		if patch.CheckIn != nil {
			checkIn = *patch.CheckIn
			datesChanged = true
			updates["check_in"] = checkIn
		}
		if patch.CheckOut != nil {
			checkOut = *patch.CheckOut
			datesChanged = true
			updates["check_out"] = checkOut
		}
		if datesChanged && !checkIn.Before(checkOut) {
			return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInput)
		}

		if patch.Adults != nil {
			if *patch.Adults < 1 {
				return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
			}
			updates["adults"] = *patch.Adults
		}
		if patch.Children != nil {
			if *patch.Children < 0 {
				return fmt.Errorf("%w: children must not be negative", ErrInvalidInput)
			}
			updates["children"] = *patch.Children
		}
		if patch.TotalPrice != nil {
			if *patch.TotalPrice <= 0 {
				return fmt.Errorf("%w: total price must be positive", ErrInvalidInput)
			}
			updates["total_price"] = *patch.TotalPrice
		}
		if patch.PaymentStatus != nil {
			if !patch.PaymentStatus.IsValid() {
				return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, *patch.PaymentStatus)
			}
			updates["payment_status"] = *patch.PaymentStatus
		}
		if patch.Source != nil {
			updates["source"] = *patch.Source
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if patch.SpecialRequests != nil {
			updates["special_requests"] = *patch.SpecialRequests
		}

		effectiveStatus := reservation.Status
		if patch.Status != nil && *patch.Status != reservation.Status {
			if !patch.Status.IsValid() {
				return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
			}
			effectiveStatus = *patch.Status
		}

		if datesChanged && effectiveStatus.IsActive() {
			// Same serialization as Create: hold the room row so the
			// availability check and the date write commit as one unit
			// against concurrent writers on this room.
			var room models.Room
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&room, reservation.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: room %d", ErrNotFound, reservation.RoomID)
				}
				return fmt.Errorf("failed to load room %d: %w", reservation.RoomID, err)
			}

			free, err := roomAvailable(tx, reservation.RoomID, checkIn, checkOut, reservation.ID)
			if err != nil {
				return err
			}
			if !free {
				return fmt.Errorf("%w: room %d is booked in the requested period", ErrRoomUnavailable, reservation.RoomID)
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update reservation %d: %w", id, err)
			}
		}

		if patch.Status != nil && *patch.Status != reservation.Status {
			return transition(tx, &reservation, *patch.Status)
		}
		return nil
	})
	if txErr != nil {
		if isConflictErr(txErr) &&
			!errors.Is(txErr, ErrNotFound) && !errors.Is(txErr, ErrRoomUnavailable) &&
			!errors.Is(txErr, ErrInvalidInput) && !errors.Is(txErr, ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, txErr)
		}
		return nil, txErr
	}

	return s.GetByID(id)
}

// Delete is a hard removal restricted to administrators. It does not roll
// back room status changes made by earlier transitions.
func (s *ReservationService) Delete(id uint, role models.UserRole) error {
	if role != models.RoleAdministrator {
		return fmt.Errorf("%w: delete requires administrator role", ErrForbidden)
	}

	res := s.DB.Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: reservation %d", ErrNotFound, id)
	}
	return nil
}
