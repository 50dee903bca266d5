package services

import (
	"errors"
	"fmt"

	"stayhub-backend/models"

	"gorm.io/gorm"
)

type BranchService struct {
	DB *gorm.DB
}

func NewBranchService(db *gorm.DB) *BranchService {
	return &BranchService{DB: db}
}

func (s *BranchService) Create(branch *models.Branch) error {
	return s.DB.Create(branch).Error
}

func (s *BranchService) GetAll() ([]models.Branch, error) {
	var branches []models.Branch
	err := s.DB.Find(&branches).Error
	return branches, err
}

func (s *BranchService) GetByID(id uint) (models.Branch, error) {
	var branch models.Branch
	err := s.DB.First(&branch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return branch, fmt.Errorf("branch %d: %w", id, ErrNotFound)
	}
	return branch, err
}

func (s *BranchService) Update(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	res := s.DB.Model(&models.Branch{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("branch %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *BranchService) Delete(id uint) error {
	res := s.DB.Delete(&models.Branch{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("branch %d: %w", id, ErrNotFound)
	}
	return nil
}
