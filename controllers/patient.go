package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hasangurel/clinic-backend/db"
	"github.com/hasangurel/clinic-backend/models"
	"github.com/hasangurel/clinic-backend/utils"
)

// GetAllPatients returns every patient.
func GetAllPatients(c *fiber.Ctx) error {
	var patients []models.Patient
	if err := db.DB.Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}
	stripPatientPasswords(patients)
	return c.JSON(patients)
}

// GetPatient returns a patient by ID.
func GetPatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	patient.Password = ""
	return c.JSON(patient)
}

// RegisterPatient is the public self-registration endpoint.
func RegisterPatient(c *fiber.Ctx) error {
	return createPatient(c)
}

// CreatePatient provisions a patient account. Admin only.
func CreatePatient(c *fiber.Ctx) error {
	return createPatient(c)
}

func createPatient(c *fiber.Ctx) error {
	patient := new(models.Patient)
	if err := c.BodyParser(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Validation failed",
			Error:   err.Error(),
		})
	}

	var existing models.Patient
	if db.DB.Where("username = ?", patient.Username).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Username already exists",
			Error:   "a patient with this username is already registered",
		})
	}
	if db.DB.Where("email = ?", patient.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Email already registered",
			Error:   "a patient with this email is already registered",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(patient.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
			Error:   err.Error(),
		})
	}
	patient.Password = string(hashed)

	if err := db.DB.Create(patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create patient",
			Error:   err.Error(),
		})
	}

	patient.Password = ""
	return c.Status(fiber.StatusCreated).JSON(patient)
}

// UpdatePatient applies a partial update to an existing patient.
func UpdatePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var existing models.Patient
	if err := db.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Patient not found",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patient",
			Error:   err.Error(),
		})
	}

	var patient models.Patient
	if err := c.BodyParser(&patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if patient.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(patient.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to hash password",
				Error:   err.Error(),
			})
		}
		patient.Password = string(hashed)
	}

	if err := db.DB.Model(&existing).Updates(patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update patient",
			Error:   err.Error(),
		})
	}

	existing.Password = ""
	return c.JSON(existing)
}

// DeletePatient removes a patient. Admin only.
func DeletePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete patient",
			Error:   err.Error(),
		})
	}
	return c.SendString("Patient deleted successfully")
}

// SearchPatients finds patients by name substring, case-insensitively.
func SearchPatients(c *fiber.Ctx) error {
	name := c.Query("name")
	var patients []models.Patient
	if err := db.DB.Where("name ILIKE ?", "%"+name+"%").Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to search patients",
			Error:   err.Error(),
		})
	}
	stripPatientPasswords(patients)
	return c.JSON(patients)
}

// GetActivePatients lists patients whose accounts are active.
func GetActivePatients(c *fiber.Ctx) error {
	var patients []models.Patient
	if err := db.DB.Where("is_active = ?", true).Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}
	stripPatientPasswords(patients)
	return c.JSON(patients)
}

func stripPatientPasswords(patients []models.Patient) {
	for i := range patients {
		patients[i].Password = ""
	}
}
