package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// BankAccount is the payout destination snapshot for a professional.
// Payouts copy it at creation time so later edits do not rewrite the
// record of where money was actually sent.
type BankAccount struct {
	HolderName    string `json:"holder_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
}

// Value implements the driver.Valuer interface
func (b BankAccount) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements the sql.Scanner interface
func (b *BankAccount) Scan(value interface{}) error {
	if value == nil {
		*b = BankAccount{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, b)
}

// Professional is a service provider account in the marketplace
type Professional struct {
	gorm.Model
	Name          string      `json:"name" gorm:"not null"`
	Email         string      `json:"email" gorm:"not null;uniqueIndex"`
	Phone         string      `json:"phone,omitempty"`
	Category      string      `json:"category" gorm:"not null;index"`
	HourlyRate    float64     `json:"hourly_rate"`
	Rating        float64     `json:"rating" gorm:"not null;default:0"`
	RatingCount   int         `json:"rating_count" gorm:"not null;default:0"`
	Available     bool        `json:"available" gorm:"not null;default:true"`
	Address       string      `json:"address,omitempty"`
	City          string      `json:"city,omitempty"`
	PostalCode    string      `json:"postal_code,omitempty"`
	LocationPoint *GeoPoint   `json:"location_point,omitempty" gorm:"type:jsonb"`
	BankAccount   BankAccount `json:"bank_account" gorm:"type:jsonb"`
}

// Validate ensures the professional data is valid
func (p *Professional) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("professional name cannot be empty")
	}
	if !ValidServiceCategory(p.Category) {
		return fmt.Errorf("invalid service category: %s", p.Category)
	}
	return nil
}

// BeforeSave is a GORM hook that strips malformed location points
func (p *Professional) BeforeSave(_ *gorm.DB) error {
	p.LocationPoint = SanitizePoint(p.LocationPoint)
	return nil
}

// BeforeCreate is a GORM hook that runs before inserting a new professional
func (p *Professional) BeforeCreate(_ *gorm.DB) error {
	return p.Validate()
}
