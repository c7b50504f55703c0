package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"hotel-pms/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type CreateRoomInput struct {
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Type        models.RoomType `json:"type"`
	Capacity    int             `json:"capacity"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Amenities   []string        `json:"amenities"`
}

type UpdateRoomInput struct {
	Number      *string            `json:"number"`
	Name        *string            `json:"name"`
	Type        *models.RoomType   `json:"type"`
	Capacity    *int               `json:"capacity"`
	Price       *float64           `json:"price"`
	Description *string            `json:"description"`
	Amenities   []string           `json:"amenities"`
	Status      *models.RoomStatus `json:"status"`
}

func amenitiesJSON(list []string) (datatypes.JSON, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to encode amenities: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func (s *RoomService) Create(input CreateRoomInput) (*models.Room, error) {
	if input.Number == "" || input.Name == "" || input.Capacity <= 0 || input.Price <= 0 {
		return nil, fmt.Errorf("%w: number, name, type, capacity and price are required", ErrInvalidInput)
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown room type %q", ErrInvalidInput, input.Type)
	}

	amenities, err := amenitiesJSON(input.Amenities)
	if err != nil {
		return nil, err
	}

	room := models.Room{
		Number:      input.Number,
		Name:        input.Name,
		Type:        input.Type,
		Capacity:    input.Capacity,
		Price:       input.Price,
		Description: input.Description,
		Amenities:   amenities,
		Status:      models.RoomAvailable,
	}

	if err := s.DB.Create(&room).Error; err != nil {
		if isConflictErr(err) {
			return nil, fmt.Errorf("%w: room number %s already exists", ErrConflict, input.Number)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &room, nil
}

// GetAll returns rooms ordered by number with their active reservations
// (and the reservation guests) preloaded.
func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.
		Preload("Reservations", "status IN ?",
			[]models.ReservationStatus{models.ReservationConfirmed, models.ReservationCheckedIn}).
		Preload("Reservations.Guest").
		Order("number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := s.DB.
		Preload("Reservations").
		Preload("Reservations.Guest").
		First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return &room, nil
}

// Update applies a partial patch from a direct staff edit. Status may be set
// here (e.g. AVAILABLE after cleaning, or MAINTENANCE), but reservation
// transitions never go through this path.
func (s *RoomService) Update(id uint, patch UpdateRoomInput) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}

	updates := map[string]interface{}{}
	if patch.Number != nil && *patch.Number != "" {
		updates["number"] = *patch.Number
	}
	if patch.Name != nil && *patch.Name != "" {
		updates["name"] = *patch.Name
	}
	if patch.Type != nil {
		if !patch.Type.IsValid() {
			return nil, fmt.Errorf("%w: unknown room type %q", ErrInvalidInput, *patch.Type)
		}
		updates["type"] = *patch.Type
	}
	if patch.Capacity != nil {
		if *patch.Capacity <= 0 {
			return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
		}
		updates["capacity"] = *patch.Capacity
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
		}
		updates["price"] = *patch.Price
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Amenities != nil {
		amenities, err := amenitiesJSON(patch.Amenities)
		if err != nil {
			return nil, err
		}
		updates["amenities"] = amenities
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown room status %q", ErrInvalidInput, *patch.Status)
		}
		updates["status"] = *patch.Status
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&room).Updates(updates).Error; err != nil {
			if isConflictErr(err) {
				return nil, fmt.Errorf("%w: room number already exists", ErrConflict)
			}
			return nil, fmt.Errorf("failed to update room %d: %w", id, err)
		}
	}
	return &room, nil
}

// Delete is restricted to administrators.
func (s *RoomService) Delete(id uint, role models.UserRole) error {
	if role != models.RoleAdministrator {
		return fmt.Errorf("%w: delete requires administrator role", ErrForbidden)
	}
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	return nil
}
