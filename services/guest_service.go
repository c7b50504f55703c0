package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-pms/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

type GuestInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Document     string `json:"document"`
	DocumentType string `json:"documentType"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`

	BirthDate        *time.Time `json:"birthDate"`
	Nationality      string     `json:"nationality"`
	EmergencyContact string     `json:"emergencyContact"`
	Notes            string     `json:"notes"`
}

// UpdateGuestInput carries a partial patch: nil fields are left unchanged.
type UpdateGuestInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Document     *string `json:"document"`
	DocumentType *string `json:"documentType"`

	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Country *string `json:"country"`

	BirthDate        *time.Time `json:"birthDate"`
	Nationality      *string    `json:"nationality"`
	EmergencyContact *string    `json:"emergencyContact"`
	Notes            *string    `json:"notes"`
}

func (s *GuestService) Create(input GuestInput) (*models.Guest, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	country := input.Country
	if country == "" {
		country = "Brazil"
	}

	guest := models.Guest{
		Name:             strings.TrimSpace(input.Name),
		Email:            input.Email,
		Phone:            input.Phone,
		Document:         input.Document,
		DocumentType:     input.DocumentType,
		Address:          input.Address,
		City:             input.City,
		State:            input.State,
		ZipCode:          input.ZipCode,
		Country:          country,
		BirthDate:        input.BirthDate,
		Nationality:      input.Nationality,
		EmergencyContact: input.EmergencyContact,
		Notes:            input.Notes,
	}

	if err := s.DB.Create(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return &guest, nil
}

// GetAll returns guests ordered by name with their reservations and rooms.
func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.
		Preload("Reservations").
		Preload("Reservations.Room").
		Order("name ASC").
		Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	err := s.DB.
		Preload("Reservations").
		Preload("Reservations.Room").
		First(&guest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guest %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load guest %d: %w", id, err)
	}
	return &guest, nil
}

// Update applies a partial patch; absent fields keep their stored values.
func (s *GuestService) Update(id uint, patch UpdateGuestInput) (*models.Guest, error) {
	guest, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		updates["name"] = name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Document != nil {
		updates["document"] = *patch.Document
	}
	if patch.DocumentType != nil {
		updates["document_type"] = *patch.DocumentType
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.State != nil {
		updates["state"] = *patch.State
	}
	if patch.ZipCode != nil {
		updates["zip_code"] = *patch.ZipCode
	}
	if patch.Country != nil && *patch.Country != "" {
		updates["country"] = *patch.Country
	}
	if patch.BirthDate != nil {
		updates["birth_date"] = patch.BirthDate
	}
	if patch.Nationality != nil {
		updates["nationality"] = *patch.Nationality
	}
	if patch.EmergencyContact != nil {
		updates["emergency_contact"] = *patch.EmergencyContact
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	if len(updates) > 0 {
		if err := s.DB.Model(guest).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update guest %d: %w", id, err)
		}
	}
	return guest, nil
}

// Delete is restricted to administrators.
func (s *GuestService) Delete(id uint, role models.UserRole) error {
	if role != models.RoleAdministrator {
		return fmt.Errorf("%w: delete requires administrator role", ErrForbidden)
	}
	res := s.DB.Delete(&models.Guest{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete guest %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: guest %d", ErrNotFound, id)
	}
	return nil
}
