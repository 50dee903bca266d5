package services

import (
	"errors"
	"fmt"
	"time"

	"stayhub-backend/models"
	"stayhub-backend/utils"

	"gorm.io/gorm"
)

// AvailabilityService answers occupancy questions over half-open date
// intervals [checkIn, checkOut). It is independent of pricing.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// AvailabilityCalendar is day-by-day availability over [Start, End).
type AvailabilityCalendar struct {
	RoomID    uint            `json:"room_id"`
	Days      map[string]bool `json:"days"`
	Available int             `json:"available"`
	Booked    int             `json:"booked"`
}

// IsAvailable reports whether no occupying booking for the room overlaps
// [checkIn, checkOut). excludeBookingID, when set, ignores that booking so an
// edit never conflicts with itself.
func (s *AvailabilityService) IsAvailable(roomID uint, checkIn, checkOut time.Time, excludeBookingID *uint) (bool, error) {
	return s.isAvailableTx(s.DB, roomID, checkIn, checkOut, excludeBookingID)
}

// isAvailableTx is the transactional form: booking creation calls it inside
// the same transaction that inserts the booking row, after locking the room,
// so two requests cannot both pass the check for overlapping ranges.
func (s *AvailabilityService) isAvailableTx(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID *uint) (bool, error) {
	if !checkIn.Before(checkOut) {
		return false, fmt.Errorf("check-in %s not before check-out %s: %w",
			utils.FormatDate(checkIn), utils.FormatDate(checkOut), ErrInvalidDateRange)
	}

	var room models.Room
	if err := tx.Select("id").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("room %d: %w", roomID, ErrNotFound)
		}
		return false, err
	}

	// Two half-open intervals [a1,a2) and [b1,b2) overlap iff a1 < b2 && b1 < a2.
	q := tx.Model(&models.Booking{}).
		Joins("JOIN booking_rooms ON booking_rooms.booking_id = bookings.id").
		Where("booking_rooms.room_id = ?", roomID).
		Where("booking_rooms.deleted_at IS NULL").
		Where("bookings.status IN ?", models.OccupyingBookingStatuses).
		Where("bookings.check_in < ? AND ? < bookings.check_out", checkOut, checkIn)
	if excludeBookingID != nil {
		q = q.Where("bookings.id <> ?", *excludeBookingID)
	}

	var conflicts int64
	if err := q.Count(&conflicts).Error; err != nil {
		return false, fmt.Errorf("failed to count conflicting bookings: %w", err)
	}
	return conflicts == 0, nil
}

// Validate is the guard used before committing a booking.
func (s *AvailabilityService) Validate(roomID uint, checkIn, checkOut time.Time, excludeBookingID *uint) error {
	return s.validateTx(s.DB, roomID, checkIn, checkOut, excludeBookingID)
}

func (s *AvailabilityService) validateTx(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID *uint) error {
	ok, err := s.isAvailableTx(tx, roomID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("room %d is booked for %s to %s: %w",
			roomID, utils.FormatDate(checkIn), utils.FormatDate(checkOut), ErrRoomUnavailable)
	}
	return nil
}

// FindAvailableRooms returns all rooms of the type, optionally scoped to a
// branch, that are free for the whole range.
func (s *AvailabilityService) FindAvailableRooms(roomTypeID uint, checkIn, checkOut time.Time, branchID *uint) ([]models.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, fmt.Errorf("check-in %s not before check-out %s: %w",
			utils.FormatDate(checkIn), utils.FormatDate(checkOut), ErrInvalidDateRange)
	}

	q := s.DB.Where("room_type_id = ?", roomTypeID)
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	var rooms []models.Room
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	available := make([]models.Room, 0, len(rooms))
	for _, rm := range rooms {
		ok, err := s.IsAvailable(rm.ID, checkIn, checkOut, nil)
		if err != nil {
			return nil, err
		}
		if ok {
			available = append(available, rm)
		}
	}
	return available, nil
}

// CountAvailable is the size of FindAvailableRooms.
func (s *AvailabilityService) CountAvailable(roomTypeID uint, checkIn, checkOut time.Time, branchID *uint) (int, error) {
	rooms, err := s.FindAvailableRooms(roomTypeID, checkIn, checkOut, branchID)
	if err != nil {
		return 0, err
	}
	return len(rooms), nil
}

// Calendar walks [start, end) in one-day windows over the same predicate.
func (s *AvailabilityService) Calendar(roomID uint, start, end time.Time) (*AvailabilityCalendar, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("start %s not before end %s: %w",
			utils.FormatDate(start), utils.FormatDate(end), ErrInvalidDateRange)
	}

	cal := &AvailabilityCalendar{RoomID: roomID, Days: map[string]bool{}}
	for day := utils.DateOnly(start); day.Before(end); day = day.AddDate(0, 0, 1) {
		ok, err := s.IsAvailable(roomID, day, day.AddDate(0, 0, 1), nil)
		if err != nil {
			return nil, err
		}
		cal.Days[utils.FormatDate(day)] = ok
		if ok {
			cal.Available++
		} else {
			cal.Booked++
		}
	}
	return cal, nil
}
