package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomCategory groups room types for bulk pricing scope.
type RoomCategory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	BranchID    uint   `gorm:"index;column:branch_id" json:"branch_id"`
	Name        string `gorm:"size:150" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Branch Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}
