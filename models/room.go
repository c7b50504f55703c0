package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomType string

const (
	RoomTypeSingle       RoomType = "SINGLE"
	RoomTypeDouble       RoomType = "DOUBLE"
	RoomTypeSuite        RoomType = "SUITE"
	RoomTypeFamily       RoomType = "FAMILY"
	RoomTypePresidential RoomType = "PRESIDENTIAL"
)

func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeFamily, RoomTypePresidential:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomCleaning    RoomStatus = "CLEANING"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomUnavailable RoomStatus = "UNAVAILABLE"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance, RoomUnavailable:
		return true
	}
	return false
}

type Room struct {
	gorm.Model

	Number      string     `json:"number" gorm:"column:number;uniqueIndex;type:varchar(50)"`
	Name        string     `json:"name" gorm:"size:255"`
	Type        RoomType   `json:"type" gorm:"type:varchar(20)"`
	Capacity    int        `json:"capacity"`
	Price       float64    `json:"price"`
	Description string     `json:"description" gorm:"type:text"`
	Status      RoomStatus `json:"status" gorm:"type:varchar(20);default:AVAILABLE"`

	// Amenities is stored as a JSON array of strings, e.g. ["Wi-Fi","TV","Minibar"].
	Amenities datatypes.JSON `json:"amenities" gorm:"column:amenities"`

	Reservations []Reservation `gorm:"foreignKey:RoomID" json:"reservations,omitempty"`
}
