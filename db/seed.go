package db

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/hasangurel/clinic-backend/models"
)

// SeedDefaultAdmin creates the initial admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD when the admin table is empty. Without an admin no doctors
// or patients can be provisioned through the API.
func SeedDefaultAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int64
	if err := DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		log.Printf("Failed to count admins: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.Admin{Username: username, Password: string(hashed)}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin: %v", err)
		return
	}
	log.Printf("Seeded default admin %q", username)
}
