package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID       uint  `gorm:"index;column:branch_id" json:"branch_id"`
	RoomCategoryID *uint `gorm:"index;column:room_category_id" json:"room_category_id,omitempty"`

	TypeName    string `json:"typeName"`
	Description string `json:"description"`
	MaxGuests   uint   `json:"max_guests"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomCategory RoomCategory `gorm:"foreignKey:RoomCategoryID" json:"category,omitempty"`
}
