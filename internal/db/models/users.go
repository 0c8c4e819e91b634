package models

import (
	"fmt"
	"net/mail"

	"gorm.io/gorm"
)

// UserRole defines the access level of a user account
type UserRole string

// User role constants
const (
	// UserRoleCustomer is a regular customer account
	UserRoleCustomer UserRole = "customer"
	// UserRoleAdmin is a platform operator account
	UserRoleAdmin UserRole = "admin"
)

// User represents a customer account in the marketplace
type User struct {
	gorm.Model
	Username      string    `json:"username" gorm:"not null;uniqueIndex"`
	Email         string    `json:"email" gorm:"not null;uniqueIndex"`
	Role          UserRole  `json:"role" gorm:"not null;default:'customer'"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	LocationPoint *GeoPoint `json:"location_point,omitempty" gorm:"type:jsonb"`
}

// Validate ensures the user data is valid
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return fmt.Errorf("invalid email address: %w", err)
		}
	}
	return nil
}

// BeforeSave is a GORM hook that strips malformed location points
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.LocationPoint = SanitizePoint(u.LocationPoint)
	return nil
}

// BeforeCreate is a GORM hook that runs before inserting a new user
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.Role == "" {
		u.Role = UserRoleCustomer
	}
	return u.Validate()
}
