package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hasangurel/clinic-backend/controllers"
	"github.com/hasangurel/clinic-backend/middleware"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/api/doctors")
	doctor.Get("/", controllers.GetAllDoctors)
	doctor.Get("/search", controllers.SearchDoctors)
	doctor.Get("/filter", controllers.FilterDoctors)
	doctor.Get("/active", controllers.GetActiveDoctors)
	doctor.Get("/specialty/:specialty", controllers.GetDoctorsBySpecialty)
	doctor.Get("/:id", controllers.GetDoctor)
	doctor.Post("/", middleware.Protected(), middleware.RequireRole("ADMIN"), controllers.CreateDoctor)
	doctor.Post("/:id/avatar", middleware.Protected(), middleware.RequireRole("ADMIN"), controllers.UploadDoctorAvatar)
	doctor.Put("/:id", middleware.Protected(), controllers.UpdateDoctor)
	doctor.Delete("/:id", middleware.Protected(), middleware.RequireRole("ADMIN"), controllers.DeleteDoctor)
}
