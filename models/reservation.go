package models

import (
	"time"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCancelled  ReservationStatus = "CANCELLED"
	ReservationNoShow     ReservationStatus = "NO_SHOW"
)

// reservationTransitions defines the allowed status state machine.
// CHECKED_OUT, CANCELLED and NO_SHOW are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationConfirmed:  {ReservationCheckedIn, ReservationCancelled, ReservationNoShow},
	ReservationCheckedIn:  {ReservationCheckedOut},
	ReservationCheckedOut: {},
	ReservationCancelled:  {},
	ReservationNoShow:     {},
}

func (s ReservationStatus) IsValid() bool {
	_, ok := reservationTransitions[s]
	return ok
}

func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, t := range reservationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s ReservationStatus) IsTerminal() bool {
	allowed, ok := reservationTransitions[s]
	return !ok || len(allowed) == 0
}

// IsActive reports whether the reservation counts against room availability.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationConfirmed || s == ReservationCheckedIn
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPartial  PaymentStatus = "PARTIAL"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"referenceCode"`

	GuestID uint `gorm:"index;column:guest_id" json:"guestId"`
	RoomID  uint `gorm:"index;column:room_id" json:"roomId"`

	// [CheckIn, CheckOut): the check-out date is not occupied, so
	// back-to-back reservations may share a boundary date.
	CheckIn  time.Time `gorm:"column:check_in;index" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"checkOut"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	TotalPrice float64 `gorm:"column:total_price" json:"totalPrice"`

	Status        ReservationStatus `gorm:"column:status;type:varchar(20);default:CONFIRMED" json:"status"`
	PaymentStatus PaymentStatus     `gorm:"column:payment_status;type:varchar(20);default:PENDING" json:"paymentStatus"`

	Source          string `gorm:"size:100" json:"source,omitempty"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"specialRequests,omitempty"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
