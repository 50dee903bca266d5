package services

import (
	"errors"
	"fmt"

	"stayhub-backend/models"

	"gorm.io/gorm"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) Create(rt *models.RoomType) error {
	if rt.RoomCategoryID != nil {
		var cat models.RoomCategory
		if err := s.DB.First(&cat, *rt.RoomCategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room category %d: %w", *rt.RoomCategoryID, ErrNotFound)
			}
			return err
		}
	}
	return s.DB.Create(rt).Error
}

func (s *RoomTypeService) GetAll() ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.Preload("RoomCategory").Find(&types).Error
	return types, err
}

func (s *RoomTypeService) GetByID(id uint) (models.RoomType, error) {
	var rt models.RoomType
	err := s.DB.First(&rt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rt, fmt.Errorf("room type %d: %w", id, ErrNotFound)
	}
	return rt, err
}

func (s *RoomTypeService) Delete(id uint) error {
	res := s.DB.Delete(&models.RoomType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room type %d: %w", id, ErrNotFound)
	}
	return nil
}
