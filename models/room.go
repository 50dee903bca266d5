package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	BranchID uint `json:"branch_id" gorm:"index;column:branch_id"`
	// Nullable so a room can exist before its type is assigned; ROOM_TYPE and
	// CATEGORY scoped adjustments simply never match a typeless room.
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id;index"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`

	// DisplayPrice is derived: always recomputable from BasePrice plus either
	// the standing discount or exactly one active adjustment, never a delta on
	// top of a previous DisplayPrice.
	BasePrice               float64 `json:"basePrice" gorm:"column:base_price"`
	StandingDiscountPercent float64 `json:"standingDiscountPercent" gorm:"column:standing_discount_percent"`
	DisplayPrice            float64 `json:"displayPrice" gorm:"column:display_price"`

	Status       string `json:"status"`
	MaxOccupancy int    `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
