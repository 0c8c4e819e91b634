package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Review is a customer's rating of a completed job
type Review struct {
	gorm.Model
	JobID          uint      `json:"job_id" gorm:"not null;uniqueIndex"`
	CustomerID     uint      `json:"customer_id" gorm:"not null;index"`
	ProfessionalID uint      `json:"professional_id" gorm:"not null;index"`
	Rating         int       `json:"rating" gorm:"not null"`
	Comment        string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// Validate ensures the review data is valid
func (r *Review) Validate() error {
	if r.JobID == 0 {
		return fmt.Errorf("review job_id cannot be empty")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before inserting a new review
func (r *Review) BeforeCreate(_ *gorm.DB) error {
	return r.Validate()
}
