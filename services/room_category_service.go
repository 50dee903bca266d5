package services

import (
	"errors"
	"fmt"

	"stayhub-backend/models"

	"gorm.io/gorm"
)

type RoomCategoryService struct {
	DB *gorm.DB
}

func NewRoomCategoryService(db *gorm.DB) *RoomCategoryService {
	return &RoomCategoryService{DB: db}
}

func (s *RoomCategoryService) Create(cat *models.RoomCategory) error {
	return s.DB.Create(cat).Error
}

func (s *RoomCategoryService) GetAll() ([]models.RoomCategory, error) {
	var cats []models.RoomCategory
	err := s.DB.Find(&cats).Error
	return cats, err
}

func (s *RoomCategoryService) GetByID(id uint) (models.RoomCategory, error) {
	var cat models.RoomCategory
	err := s.DB.First(&cat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cat, fmt.Errorf("room category %d: %w", id, ErrNotFound)
	}
	return cat, err
}

func (s *RoomCategoryService) Delete(id uint) error {
	res := s.DB.Delete(&models.RoomCategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room category %d: %w", id, ErrNotFound)
	}
	return nil
}
