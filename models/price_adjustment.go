package models

import (
	"gorm.io/gorm"
)

const (
	AdjustmentKindPercentage  = "PERCENTAGE"
	AdjustmentKindFixedAmount = "FIXED_AMOUNT"

	AdjustmentDirectionIncrease = "INCREASE"
	AdjustmentDirectionDecrease = "DECREASE"

	TargetScopeSpecificRoom = "SPECIFIC_ROOM"
	TargetScopeRoomType     = "ROOM_TYPE"
	TargetScopeCategory     = "CATEGORY"
)

// PriceAdjustment is one price-modification rule owned by an Event. Magnitude
// is percentage points for PERCENTAGE and a currency amount for FIXED_AMOUNT.
// Adjustments are immutable once their event is ACTIVE; updates go through the
// event's revert-then-replace path.
type PriceAdjustment struct {
	gorm.Model

	EventID uint `gorm:"index;column:event_id" json:"event_id"`

	Kind      string  `gorm:"size:32;column:kind" json:"kind"`
	Direction string  `gorm:"size:32;column:direction" json:"direction"`
	Magnitude float64 `gorm:"column:magnitude" json:"magnitude"`

	TargetScope string `gorm:"size:32;column:target_scope" json:"target_scope"`
	TargetID    uint   `gorm:"column:target_id" json:"target_id"`
}
