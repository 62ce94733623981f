package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hasangurel/clinic-backend/controllers"
	"github.com/hasangurel/clinic-backend/middleware"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App) {
	patient := app.Group("/api/patients")
	patient.Get("/", controllers.GetAllPatients)
	patient.Get("/search", controllers.SearchPatients)
	patient.Get("/active", controllers.GetActivePatients)
	patient.Get("/:id", controllers.GetPatient)
	patient.Post("/register", controllers.RegisterPatient)
	patient.Post("/", middleware.Protected(), middleware.RequireRole("ADMIN"), controllers.CreatePatient)
	patient.Put("/:id", middleware.Protected(), controllers.UpdatePatient)
	patient.Delete("/:id", middleware.Protected(), middleware.RequireRole("ADMIN"), controllers.DeletePatient)
}
