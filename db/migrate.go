package db

import (
	"fmt"
	"log"

	"github.com/hasangurel/clinic-backend/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Admin{},
		&models.Doctor{},
		&models.Patient{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	SeedDefaultAdmin()

	fmt.Println("✅ Migrations applied successfully!")
}
