// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents the user entity
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Email     string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password  string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
}

// Address represents user addresses
type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	BuildingName string    `gorm:"size:255" json:"building_name"`
	Street       string    `gorm:"size:255;not null" json:"street"`
	City         string    `gorm:"size:100;not null" json:"city"`
	State        string    `gorm:"size:100;not null" json:"state"`
	Country      string    `gorm:"size:100;not null" json:"country"`
	Pincode      string    `gorm:"size:20;not null" json:"pincode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Address
func (Address) TableName() string {
	return "addresses"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	return nil
}
