package models

import (
	"gorm.io/gorm"
)

// BookingRoom links a Booking to a Room. PricePerNight is a snapshot of the
// room's display price at booking time and is never recomputed when pricing
// later changes.
type BookingRoom struct {
	gorm.Model

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`
	RoomID    uint `gorm:"index;column:room_id" json:"room_id"`

	Nights        int     `gorm:"column:nights;default:0" json:"nights"`
	PricePerNight float64 `gorm:"column:price_per_night" json:"price_per_night"`
	TotalAmount   float64 `gorm:"column:total_amount" json:"total_amount"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"-"`
	Room    Room    `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
