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

// GetAllDoctors returns every doctor.
func GetAllDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := db.DB.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	stripDoctorPasswords(doctors)
	return c.JSON(doctors)
}

// GetDoctor returns a doctor by ID.
func GetDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	doctor.Password = ""
	return c.JSON(doctor)
}

// CreateDoctor provisions a doctor account. Admin only.
func CreateDoctor(c *fiber.Ctx) error {
	doctor := new(models.Doctor)
	if err := c.BodyParser(doctor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(doctor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Validation failed",
			Error:   err.Error(),
		})
	}

	var existing models.Doctor
	if db.DB.Where("username = ?", doctor.Username).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Username already exists",
			Error:   "a doctor with this username is already registered",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
			Error:   err.Error(),
		})
	}
	doctor.Password = string(hashed)

	if err := db.DB.Create(doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create doctor",
			Error:   err.Error(),
		})
	}

	doctor.Password = ""
	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// UpdateDoctor applies a partial update to an existing doctor.
func UpdateDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var existing models.Doctor
	if err := db.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Doctor not found",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctor",
			Error:   err.Error(),
		})
	}

	var doctor models.Doctor
	if err := c.BodyParser(&doctor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if doctor.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to hash password",
				Error:   err.Error(),
			})
		}
		doctor.Password = string(hashed)
	}

	if err := db.DB.Model(&existing).Updates(doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update doctor",
			Error:   err.Error(),
		})
	}

	existing.Password = ""
	return c.JSON(existing)
}

// DeleteDoctor removes a doctor. Admin only.
func DeleteDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete doctor",
			Error:   err.Error(),
		})
	}
	return c.SendString("Doctor deleted successfully")
}

// SearchDoctors finds doctors by name substring, case-insensitively.
func SearchDoctors(c *fiber.Ctx) error {
	name := c.Query("name")
	var doctors []models.Doctor
	if err := db.DB.Where("name ILIKE ?", "%"+name+"%").Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to search doctors",
			Error:   err.Error(),
		})
	}
	stripDoctorPasswords(doctors)
	return c.JSON(doctors)
}

// GetDoctorsBySpecialty lists doctors with the given specialty.
func GetDoctorsBySpecialty(c *fiber.Ctx) error {
	specialty := c.Params("specialty")
	var doctors []models.Doctor
	if err := db.DB.Where("specialty = ?", specialty).Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	stripDoctorPasswords(doctors)
	return c.JSON(doctors)
}

// FilterDoctors lists doctors with the given specialty offering the given
// time slot.
func FilterDoctors(c *fiber.Ctx) error {
	specialty := c.Query("specialty")
	timeSlot := c.Query("timeSlot")

	var doctors []models.Doctor
	if err := db.DB.Where("specialty = ? AND available_times @> ?::jsonb", specialty, `["`+timeSlot+`"]`).
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to filter doctors",
			Error:   err.Error(),
		})
	}
	stripDoctorPasswords(doctors)
	return c.JSON(doctors)
}

// GetActiveDoctors lists doctors currently accepting appointments.
func GetActiveDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := db.DB.Where("is_active = ?", true).Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	stripDoctorPasswords(doctors)
	return c.JSON(doctors)
}

// UploadDoctorAvatar stores a doctor's profile image and saves the URL.
// Admin only.
func UploadDoctorAvatar(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing avatar file",
			Error:   err.Error(),
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read avatar file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadToCloudinary(file, "doctor-"+id, "doctor-avatars")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload avatar",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&doctor).Update("avatar_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save avatar URL",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"avatar_url": url})
}

func stripDoctorPasswords(doctors []models.Doctor) {
	for i := range doctors {
		doctors[i].Password = ""
	}
}
