package services

import (
	"errors"
	"fmt"

	"stayhub-backend/models"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

func (s *CustomerService) Create(cust *models.Customer) error {
	return s.DB.Create(cust).Error
}

func (s *CustomerService) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.DB.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (s *CustomerService) GetByID(id uint) (models.Customer, error) {
	var cust models.Customer
	err := s.DB.First(&cust, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cust, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	return cust, err
}
