package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-pms/models"
	"hotel-pms/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages staff accounts. Every operation here is restricted to
// administrators; receptionists only authenticate.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type CreateUserInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

func (s *UserService) Create(input CreateUserInput, requester models.UserRole) (*models.User, error) {
	if requester != models.RoleAdministrator {
		return nil, fmt.Errorf("%w: managing users requires administrator role", ErrForbidden)
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	role := input.Role
	if role == "" {
		role = models.RoleReceptionist
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hash),
		Role:     role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isConflictErr(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetAll(requester models.UserRole) ([]models.User, error) {
	if requester != models.RoleAdministrator {
		return nil, fmt.Errorf("%w: managing users requires administrator role", ErrForbidden)
	}
	var users []models.User
	if err := s.DB.Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return users, nil
}

func (s *UserService) Delete(id uint, requester models.UserRole) error {
	if requester != models.RoleAdministrator {
		return fmt.Errorf("%w: managing users requires administrator role", ErrForbidden)
	}
	res := s.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

// Authenticate verifies the credentials and issues a fresh session token.
func (s *UserService) Authenticate(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown email and bad password return the same error so the
			// response does not reveal which accounts exist.
			return nil, "", fmt.Errorf("%w: invalid credentials", ErrForbidden)
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrForbidden)
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}
	if err := s.DB.Model(&user).Update("token", token).Error; err != nil {
		return nil, "", fmt.Errorf("failed to persist session token: %w", err)
	}
	return &user, token, nil
}

// FindByToken resolves the requesting principal from a session token.
func (s *UserService) FindByToken(token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrForbidden)
	}
	var user models.User
	if err := s.DB.Where("token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid token", ErrForbidden)
		}
		return nil, fmt.Errorf("failed to load user by token: %w", err)
	}
	return &user, nil
}

// Logout invalidates the user's session token.
func (s *UserService) Logout(userID uint) error {
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("token", nil).Error; err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
