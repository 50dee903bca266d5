package services

import (
	"errors"
	"fmt"

	"stayhub-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB         *gorm.DB
	Reconciler *ReconcileService
}

func NewRoomService(db *gorm.DB, reconciler *ReconcileService) *RoomService {
	return &RoomService{DB: db, Reconciler: reconciler}
}

// Create seeds the display price from the standing formula so a new room is
// priced before any event touches it.
func (s *RoomService) Create(room *models.Room) error {
	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := s.DB.First(&rt, *room.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room type %d: %w", *room.RoomTypeID, ErrNotFound)
			}
			return err
		}
	}
	room.DisplayPrice = StandingPrice(room.BasePrice, room.StandingDiscountPercent)
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("RoomType").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.Preload("RoomType").First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room, fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	return room, err
}

// DisplayPrice reads the derived customer-facing nightly rate.
func (s *RoomService) DisplayPrice(id uint) (float64, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return 0, err
	}
	return room.DisplayPrice, nil
}

// Update applies partial updates. DisplayPrice is derived state, so direct
// edits to it are dropped; pricing-relevant edits trigger an explicit
// single-room reconciliation instead of a hidden side effect.
func (s *RoomService) Update(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")
	delete(updates, "display_price")
	delete(updates, "displayPrice")

	res := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room %d: %w", id, ErrNotFound)
	}

	if touchesPricing(updates) {
		return s.Reconciler.ReconcileRoom(id)
	}
	return nil
}

func (s *RoomService) Delete(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	return nil
}

func touchesPricing(updates map[string]interface{}) bool {
	for _, key := range []string{"base_price", "basePrice", "standing_discount_percent", "standingDiscountPercent"} {
		if _, ok := updates[key]; ok {
			return true
		}
	}
	return false
}
