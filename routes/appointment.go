package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hasangurel/clinic-backend/controllers"
	"github.com/hasangurel/clinic-backend/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/api/appointments")
	appointment.Get("/", middleware.Protected(), middleware.RequireRole("ADMIN"), controllers.GetAllAppointments)
	appointment.Get("/status/:status", controllers.GetAppointmentsByStatus)
	appointment.Get("/doctor/:doctorId", middleware.Protected(), controllers.GetAppointmentsByDoctor)
	appointment.Get("/patient/:patientId", middleware.Protected(), controllers.GetAppointmentsByPatient)
	appointment.Get("/:id", middleware.Protected(), controllers.GetAppointment)
	appointment.Post("/", middleware.Protected(), controllers.CreateAppointment)
	appointment.Put("/:id", middleware.Protected(), controllers.UpdateAppointment)
	appointment.Delete("/:id", middleware.Protected(), controllers.DeleteAppointment)
}
