package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hasangurel/clinic-backend/controllers"
	"github.com/hasangurel/clinic-backend/middleware"
)

// SetupPrescriptionRoutes configures all prescription related routes
func SetupPrescriptionRoutes(app *fiber.App) {
	prescription := app.Group("/api/prescriptions")
	prescription.Get("/", middleware.Protected(), middleware.RequireRole("ADMIN"), controllers.GetAllPrescriptions)
	prescription.Get("/search", controllers.SearchPrescriptions)
	prescription.Get("/appointment/:appointmentId", controllers.GetPrescriptionsByAppointment)
	prescription.Get("/patient/:patientId", middleware.Protected(), controllers.GetPrescriptionsByPatient)
	prescription.Get("/doctor/:doctorId", middleware.Protected(), middleware.RequireRole("DOCTOR"), controllers.GetPrescriptionsByDoctor)
	prescription.Get("/:id", middleware.Protected(), controllers.GetPrescription)
	prescription.Post("/", middleware.Protected(), middleware.RequireRole("DOCTOR"), controllers.CreatePrescription)
	prescription.Put("/:id", middleware.Protected(), middleware.RequireRole("DOCTOR"), controllers.UpdatePrescription)
	prescription.Delete("/:id", middleware.Protected(), middleware.RequireRole("DOCTOR"), controllers.DeletePrescription)
}
