package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventStatusScheduled = "SCHEDULED"
	EventStatusActive    = "ACTIVE"
	EventStatusCompleted = "COMPLETED"
	EventStatusCancelled = "CANCELLED"
)

// Event is a named, dated bundle of price adjustments with its own lifecycle.
// StartDate and EndDate are inclusive calendar dates.
type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID    uint   `gorm:"index;column:branch_id" json:"branch_id"`
	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	StartDate time.Time `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;type:date" json:"end_date"`

	Status string `gorm:"size:32;index" json:"status"`

	// LastApplyReport records the most recent apply/revert outcome, including
	// any adjustments that were skipped (partial failures).
	LastApplyReport datatypes.JSON `gorm:"column:last_apply_report" json:"last_apply_report,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Adjustments []PriceAdjustment `gorm:"foreignKey:EventID" json:"adjustments"`
	Branch      Branch            `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// Terminal reports whether the event can no longer transition.
func (e *Event) Terminal() bool {
	return e.Status == EventStatusCompleted || e.Status == EventStatusCancelled
}
