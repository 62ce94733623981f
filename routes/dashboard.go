package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hasangurel/clinic-backend/controllers"
)

// SetupDashboardRoutes configures the server-rendered dashboard views
func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/", controllers.Index)
	app.Get("/adminDashboard/:token", controllers.AdminDashboard)
	app.Get("/doctorDashboard/:token", controllers.DoctorDashboard)
	app.Get("/patientDashboard/:token", controllers.PatientDashboard)
}
