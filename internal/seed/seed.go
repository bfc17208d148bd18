// Package seed populates an empty development database with a handful of
// users and appointments.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"appointment-booking-server/internal/models"
)

//go:embed appointments.json
var appointmentsData []byte

// seedPassword is the password shared by all seeded accounts.
const seedPassword = "Password1"

// Run seeds users and appointments when their tables are empty. Intended
// for development only; gate it behind configuration.
func Run(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	if err := seedAppointments(db); err != nil {
		return fmt.Errorf("seeding appointments: %w", err)
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []models.User{
		{UserName: "Admin_1", Email: "admin1@example.com", IsAdmin: true},
		{UserName: "Employee_1", Email: "employee1@example.com", IsEmployee: true},
		{UserName: "Customer_1", Email: "customer1@example.com"},
		{UserName: "Customer_2", Email: "customer2@example.com"},
		{UserName: "Customer_3", Email: "customer3@example.com"},
	}

	for i := range users {
		if err := users[i].SetPassword(seedPassword); err != nil {
			return err
		}
	}

	return db.Create(&users).Error
}

func seedAppointments(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Appointment{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var appointments []models.Appointment
	if err := json.Unmarshal(appointmentsData, &appointments); err != nil {
		return err
	}

	return db.Create(&appointments).Error
}
