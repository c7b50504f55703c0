package services

import (
	"errors"
	"fmt"

	"hotel-pms/models"

	"gorm.io/gorm"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Get returns the single settings row, creating an empty one on first read.
func (s *SettingsService) Get() (*models.HotelSetting, error) {
	var setting models.HotelSetting
	err := s.DB.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.HotelSetting{}
		if err := s.DB.Create(&setting).Error; err != nil {
			return nil, fmt.Errorf("failed to initialize hotel settings: %w", err)
		}
		return &setting, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hotel settings: %w", err)
	}
	return &setting, nil
}

func (s *SettingsService) Update(input models.HotelSetting) (*models.HotelSetting, error) {
	setting, err := s.Get()
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":    input.Name,
		"address": input.Address,
		"phone":   input.Phone,
		"email":   input.Email,
		"website": input.Website,
	}
	if err := s.DB.Model(setting).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update hotel settings: %w", err)
	}
	return setting, nil
}
