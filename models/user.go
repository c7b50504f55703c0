package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdministrator UserRole = "ADMINISTRATOR"
	RoleReceptionist  UserRole = "RECEPTIONIST"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdministrator || r == RoleReceptionist
}

type User struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Name     string   `gorm:"size:255" json:"name"`
	Email    string   `gorm:"uniqueIndex;size:150" json:"email"`
	Password string   `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Role     UserRole `gorm:"type:varchar(20);default:RECEPTIONIST" json:"role"`

	// Session token issued at login, cleared at logout.
	Token *string `gorm:"size:128;index" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
