package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/hasangurel/clinic-backend/db"
	"github.com/hasangurel/clinic-backend/models"
	"github.com/hasangurel/clinic-backend/token"
	"github.com/hasangurel/clinic-backend/utils"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Login authenticates an admin, doctor, or patient and issues a token.
// A missing account and a wrong password are deliberately indistinguishable.
func Login(c *fiber.Ctx) error {
	input := new(LoginRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
			Error:   err.Error(),
		})
	}

	role := strings.ToUpper(input.Role)

	var (
		userID uint
		hash   string
	)
	switch role {
	case "ADMIN":
		var admin models.Admin
		if db.DB.Where("username = ?", input.Username).First(&admin).RowsAffected == 0 {
			return invalidCredentials(c)
		}
		userID, hash = admin.ID, admin.Password
	case "DOCTOR":
		var doctor models.Doctor
		if db.DB.Where("username = ?", input.Username).First(&doctor).RowsAffected == 0 {
			return invalidCredentials(c)
		}
		userID, hash = doctor.ID, doctor.Password
	case "PATIENT":
		var patient models.Patient
		if db.DB.Where("username = ?", input.Username).First(&patient).RowsAffected == 0 {
			return invalidCredentials(c)
		}
		userID, hash = patient.ID, patient.Password
	default:
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid role: " + input.Role,
			Error:   "role must be one of ADMIN, DOCTOR, PATIENT",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		return invalidCredentials(c)
	}

	tokenString, err := token.GenerateToken(userID, input.Username, role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
			Error:   err.Error(),
		})
	}

	return c.JSON(LoginResponse{
		Token:    tokenString,
		Role:     role,
		UserID:   userID,
		Username: input.Username,
		Message:  "Login successful",
	})
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
		Message: "Invalid credentials",
		Error:   "username or password is incorrect",
	})
}
