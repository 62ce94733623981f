package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hasangurel/clinic-backend/token"
)

// Index serves the login page.
func Index(c *fiber.Ctx) error {
	return c.SendFile("./static/index.html")
}

// AdminDashboard serves the admin dashboard when the path token carries a
// valid ADMIN claim; anything else goes back to the login page.
func AdminDashboard(c *fiber.Ctx) error {
	return dashboard(c, "ADMIN", "./static/adminDashboard.html")
}

// DoctorDashboard serves the doctor dashboard.
func DoctorDashboard(c *fiber.Ctx) error {
	return dashboard(c, "DOCTOR", "./static/doctorDashboard.html")
}

// PatientDashboard serves the patient dashboard.
func PatientDashboard(c *fiber.Ctx) error {
	return dashboard(c, "PATIENT", "./static/patientDashboard.html")
}

func dashboard(c *fiber.Ctx, role, view string) error {
	if !token.ValidateTokenAndRole(c.Params("token"), role) {
		return c.Redirect("/")
	}
	return c.SendFile(view)
}
