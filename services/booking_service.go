package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stayhub-backend/models"
	"stayhub-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService wraps *gorm.DB for the booking workflow. Conflict detection
// and row insertion share one transaction so two requests can never both pass
// the availability check for overlapping ranges.
type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Logger       *slog.Logger
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService, logger *slog.Logger) *BookingService {
	return &BookingService{DB: db, Availability: availability, Logger: logger}
}

type BookingInput struct {
	CustomerID uint
	BranchID   uint
	CheckIn    time.Time
	CheckOut   time.Time
	RoomIDs    []uint
	Adults     int
	Children   int
	GuestList  []map[string]interface{}
}

// CreateBooking books one or more rooms for [CheckIn, CheckOut). Each room's
// nightly price is snapshotted from its current display price and never
// recomputed when pricing later changes.
func (s *BookingService) CreateBooking(in BookingInput) (models.Booking, error) {
	var result models.Booking

	if len(in.RoomIDs) == 0 {
		return result, fmt.Errorf("validation: no room ids provided")
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return result, fmt.Errorf("check-in %s not before check-out %s: %w",
			utils.FormatDate(in.CheckIn), utils.FormatDate(in.CheckOut), ErrInvalidDateRange)
	}
	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	var cust models.Customer
	if err := s.DB.First(&cust, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, fmt.Errorf("customer %d: %w", in.CustomerID, ErrNotFound)
		}
		return result, fmt.Errorf("db error checking customer: %w", err)
	}

	accompanyingJSON, _ := json.Marshal(normalizeGuestList(in.GuestList))
	nights := utils.NightsBetween(in.CheckIn, in.CheckOut)

	var bookingID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking := models.Booking{
			CustomerID:         in.CustomerID,
			BranchID:           in.BranchID,
			ReferenceCode:      utils.NewBookingReference(),
			Status:             models.BookingStatusConfirmed,
			CheckIn:            utils.DateOnly(in.CheckIn),
			CheckOut:           utils.DateOnly(in.CheckOut),
			Nights:             nights,
			Adults:             in.Adults,
			Children:           in.Children,
			NumberOfGuests:     in.Adults + in.Children,
			AccompanyingGuests: datatypes.JSON(accompanyingJSON),
		}

		var total float64
		links := make([]models.BookingRoom, 0, len(in.RoomIDs))
		for _, rid := range in.RoomIDs {
			// Lock the room row first; the availability check and the insert
			// below are then serialized per room.
			var room models.Room
			if err := forUpdate(tx).First(&room, rid).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("room %d: %w", rid, ErrNotFound)
				}
				return fmt.Errorf("db error checking room %d: %w", rid, err)
			}
			if err := s.Availability.validateTx(tx, rid, booking.CheckIn, booking.CheckOut, nil); err != nil {
				return err
			}

			amount := room.DisplayPrice * float64(nights)
			links = append(links, models.BookingRoom{
				RoomID:        rid,
				Nights:        nights,
				PricePerNight: room.DisplayPrice,
				TotalAmount:   amount,
			})
			total += amount
		}

		booking.TotalAmount = total
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		for i := range links {
			links[i].BookingID = booking.ID
			if err := tx.Create(&links[i]).Error; err != nil {
				return fmt.Errorf("failed to create booking_room for room %d: %w", links[i].RoomID, err)
			}
		}

		bookingID = booking.ID
		return nil
	})
	if txErr != nil {
		return result, txErr
	}

	if err := s.DB.
		Preload("Customer").
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("Rooms.Room.RoomType").
		First(&result, bookingID).Error; err != nil {
		return result, err
	}
	if result.Rooms == nil {
		result.Rooms = []models.BookingRoom{}
	}
	return result, nil
}

// CheckIn moves a PENDING or CONFIRMED booking to CHECKED_IN.
func (s *BookingService) CheckIn(bookingID uint) error {
	return s.setStatus(bookingID,
		[]string{models.BookingStatusPending, models.BookingStatusConfirmed},
		models.BookingStatusCheckedIn,
		func(updates map[string]interface{}, now time.Time) {
			updates["checked_in_at"] = now
		})
}

// Checkout moves a CHECKED_IN booking to CHECKED_OUT. The room stays occupied
// for availability purposes until the stay is closed out.
func (s *BookingService) Checkout(bookingID uint) error {
	return s.setStatus(bookingID,
		[]string{models.BookingStatusCheckedIn},
		models.BookingStatusCheckedOut,
		func(updates map[string]interface{}, now time.Time) {
			updates["checked_out_at"] = now
		})
}

// Close completes a CHECKED_OUT stay, releasing the room.
func (s *BookingService) Close(bookingID uint) error {
	return s.setStatus(bookingID,
		[]string{models.BookingStatusCheckedOut},
		models.BookingStatusCompleted, nil)
}

// Cancel cancels a booking that has not been checked in.
func (s *BookingService) Cancel(bookingID uint) error {
	return s.setStatus(bookingID,
		[]string{models.BookingStatusPending, models.BookingStatusConfirmed},
		models.BookingStatusCancelled, nil)
}

// MarkNoShow releases the room for a guest who never arrived.
func (s *BookingService) MarkNoShow(bookingID uint) error {
	return s.setStatus(bookingID,
		[]string{models.BookingStatusPending, models.BookingStatusConfirmed},
		models.BookingStatusNoShow, nil)
}

func (s *BookingService) setStatus(bookingID uint, from []string, to string, extra func(map[string]interface{}, time.Time)) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := forUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
			}
			return err
		}

		allowed := false
		for _, st := range from {
			if booking.Status == st {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("cannot move booking %d from %s to %s: %w",
				bookingID, booking.Status, to, ErrInvalidTransition)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{"status": to}
		if extra != nil {
			extra(updates, now)
		}
		return tx.Model(&booking).Updates(updates).Error
	})
}

func (s *BookingService) GetBookingDetails(bookingID uint) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.Preload("Rooms.Room.RoomType").Preload("Customer").First(&bk, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &bk, nil
}

func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Customer").
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("Rooms.Room.RoomType").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	for i := range list {
		if list[i].Rooms == nil {
			list[i].Rooms = []models.BookingRoom{}
		}
	}
	return list, nil
}

func (s *BookingService) Delete(bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Booking{}, bookingID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete booking: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
		}
		return tx.Where("booking_id = ?", bookingID).Delete(&models.BookingRoom{}).Error
	})
}

// normalizeGuestList keeps only safe fields from the free-form guest draft.
func normalizeGuestList(guestList []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(guestList))
	for _, g := range guestList {
		name := getStringFromMap(g, "name", "fullName", "full_name")
		typ := getStringFromMap(g, "type", "guestType", "guest_type")
		if name == "" {
			continue
		}
		if typ == "" {
			typ = "Adult"
		}
		out = append(out, map[string]interface{}{
			"fullName": name,
			"type":     typ,
		})
	}
	return out
}

func getStringFromMap(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s, ok2 := v.(string); ok2 {
				return s
			}
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
