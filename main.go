package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/hasangurel/clinic-backend/cron"
	"github.com/hasangurel/clinic-backend/db"
	"github.com/hasangurel/clinic-backend/redis"
	"github.com/hasangurel/clinic-backend/routes"
	"github.com/hasangurel/clinic-backend/token"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()
	token.Init()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	routes.SetupDashboardRoutes(app)
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupPrescriptionRoutes(app)

	if os.Getenv("ENABLE_REMINDERS") == "true" {
		cron.StartCronJobs()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
