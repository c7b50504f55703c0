package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name string `json:"name" gorm:"size:255"`

	Email        string `json:"email" gorm:"size:150"`
	Phone        string `json:"phone" gorm:"size:50"`
	Document     string `json:"document" gorm:"size:100"`
	DocumentType string `json:"documentType" gorm:"size:50"`

	Address string `json:"address" gorm:"size:255"`
	City    string `json:"city" gorm:"size:100"`
	State   string `json:"state" gorm:"size:100"`
	ZipCode string `json:"zipCode" gorm:"column:zip_code;size:20"`
	Country string `json:"country" gorm:"size:100;default:Brazil"`

	BirthDate        *time.Time `json:"birthDate"`
	Nationality      string     `json:"nationality" gorm:"size:100"`
	EmergencyContact string     `json:"emergencyContact" gorm:"size:255"`
	Notes            string     `json:"notes" gorm:"type:text"`

	Reservations []Reservation `gorm:"foreignKey:GuestID" json:"reservations,omitempty"`
}
