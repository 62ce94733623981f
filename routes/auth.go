package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hasangurel/clinic-backend/controllers"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/login", controllers.Login)
}
