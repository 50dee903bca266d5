package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingStatusPending    = "PENDING"
	BookingStatusConfirmed  = "CONFIRMED"
	BookingStatusCheckedIn  = "CHECKED_IN"
	BookingStatusCheckedOut = "CHECKED_OUT"
	BookingStatusCompleted  = "COMPLETED"
	BookingStatusCancelled  = "CANCELLED"
	BookingStatusNoShow     = "NO_SHOW"
)

// OccupyingBookingStatuses are the statuses that reserve physical use of a
// room for the booking's date range. A checked-out stay still occupies the
// room until it is operationally closed out (COMPLETED).
var OccupyingBookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
	BookingStatusCheckedOut,
}

// Booking holds a stay over the half-open interval [CheckIn, CheckOut):
// the checkout date itself is free for the next guest.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerID    uint   `gorm:"index;column:customer_id" json:"customer_id"`
	BranchID      uint   `gorm:"index;column:branch_id" json:"branch_id"`
	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	Status        string `gorm:"column:status;size:32;index" json:"status"`

	CheckIn  time.Time `gorm:"column:check_in;type:date" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;type:date" json:"check_out"`

	Nights         int `gorm:"column:nights" json:"nights"`
	Adults         int `gorm:"column:adults;default:1" json:"adults"`
	Children       int `gorm:"column:children;default:0" json:"children"`
	NumberOfGuests int `gorm:"column:number_of_guests" json:"number_of_guests"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`

	// Draft guest list captured at booking time; guests confirm details later.
	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`

	Customer Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Rooms    []BookingRoom `gorm:"foreignKey:BookingID" json:"rooms"`
}
