package models

import (
	"time"
)

// Appointment represents a booked time slot. The booking user is stored
// denormalized by name and email; there is no foreign key to the users
// table, so appointments survive account deletion.
type Appointment struct {
	BaseModel
	Date               time.Time `json:"date"`
	EstimatedStartTime time.Time `json:"estimatedStartTime"`
	EstimatedEndTime   time.Time `json:"estimatedEndTime"`
	Description        string    `gorm:"size:255" json:"description"`
	Price              float64   `json:"price"`
	AppUserName        string    `gorm:"size:100;index" json:"appUserName"`
	AppUserEmail       string    `gorm:"size:255;index" json:"appUserEmail"`
	IsCancelled        bool      `gorm:"default:false" json:"isCancelled"`
	Done               bool      `gorm:"default:false" json:"done"`
}
