package controllers

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hasangurel/clinic-backend/db"
	"github.com/hasangurel/clinic-backend/models"
	"github.com/hasangurel/clinic-backend/utils"
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrSlotTaken       = errors.New("doctor already has an appointment in this slot")
)

// AppointmentRequest is the booking payload. Doctor and patient are
// referenced by ID and resolved before anything is written.
type AppointmentRequest struct {
	DoctorID            uint                     `json:"doctor_id" validate:"required"`
	PatientID           uint                     `json:"patient_id" validate:"required"`
	AppointmentDateTime time.Time                `json:"appointment_date_time" validate:"required"`
	DurationMinutes     int                      `json:"duration_minutes"`
	Status              models.AppointmentStatus `json:"status"`
	Reason              string                   `json:"reason"`
	Notes               string                   `json:"notes"`
}

// AppointmentResponse flattens an appointment with the names the dashboards
// display.
type AppointmentResponse struct {
	ID                  uint                     `json:"id"`
	DoctorID            uint                     `json:"doctor_id"`
	PatientID           uint                     `json:"patient_id"`
	DoctorName          string                   `json:"doctor_name"`
	PatientName         string                   `json:"patient_name"`
	DoctorSpecialty     string                   `json:"doctor_specialty"`
	AppointmentDateTime time.Time                `json:"appointment_date_time"`
	DurationMinutes     int                      `json:"duration_minutes"`
	Status              models.AppointmentStatus `json:"status"`
	Reason              string                   `json:"reason"`
	Notes               string                   `json:"notes"`
}

func toAppointmentResponse(a models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                  a.ID,
		DoctorID:            a.DoctorID,
		PatientID:           a.PatientID,
		DoctorName:          a.Doctor.Name,
		PatientName:         a.Patient.Name,
		DoctorSpecialty:     a.Doctor.Specialty,
		AppointmentDateTime: a.AppointmentDateTime,
		DurationMinutes:     a.DurationMinutes,
		Status:              a.Status,
		Reason:              a.Reason,
		Notes:               a.Notes,
	}
}

// validateReferences confirms the doctor and patient rows exist. Both the
// create and update paths go through here so the integrity check cannot be
// bypassed.
func validateReferences(doctorID, patientID uint) error {
	if doctorID != 0 {
		var doctor models.Doctor
		if err := db.DB.First(&doctor, doctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDoctorNotFound
			}
			return err
		}
	}
	if patientID != 0 {
		var patient models.Patient
		if err := db.DB.First(&patient, patientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return err
		}
	}
	return nil
}

// GetAllAppointments returns every appointment. Admin only.
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Patient").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns an appointment by ID.
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Patient").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment books an appointment from a request payload. The doctor
// and patient must exist. When REJECT_DOUBLE_BOOKING=true an overlapping
// SCHEDULED appointment for the same doctor is rejected with 409.
func CreateAppointment(c *fiber.Ctx) error {
	input := new(AppointmentRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Validation failed",
			Error:   err.Error(),
		})
	}

	if err := validateReferences(input.DoctorID, input.PatientID); err != nil {
		return referenceError(c, err)
	}

	if os.Getenv("REJECT_DOUBLE_BOOKING") == "true" {
		duration := input.DurationMinutes
		if duration == 0 {
			duration = 30
		}
		available, err := utils.CheckDoctorAvailability(input.DoctorID, input.AppointmentDateTime,
			time.Duration(duration)*time.Minute)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to check availability",
				Error:   err.Error(),
			})
		}
		if !available {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Time slot unavailable",
				Error:   ErrSlotTaken.Error(),
			})
		}
	}

	appointment := models.Appointment{
		DoctorID:            input.DoctorID,
		PatientID:           input.PatientID,
		AppointmentDateTime: input.AppointmentDateTime,
		DurationMinutes:     input.DurationMinutes,
		Status:              input.Status,
		Reason:              input.Reason,
		Notes:               input.Notes,
	}
	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	db.DB.Preload("Doctor").Preload("Patient").First(&appointment, appointment.ID)
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointment applies a partial update after confirming the
// appointment exists. Changed doctor/patient references are validated the
// same way the booking path validates them.
func UpdateAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var existing models.Appointment
	if err := db.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Appointment not found",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointment",
			Error:   err.Error(),
		})
	}

	input := new(AppointmentRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if err := validateReferences(input.DoctorID, input.PatientID); err != nil {
		return referenceError(c, err)
	}

	updates := models.Appointment{
		DoctorID:            input.DoctorID,
		PatientID:           input.PatientID,
		AppointmentDateTime: input.AppointmentDateTime,
		DurationMinutes:     input.DurationMinutes,
		Status:              input.Status,
		Reason:              input.Reason,
		Notes:               input.Notes,
	}
	if err := db.DB.Model(&existing).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}

	db.DB.Preload("Doctor").Preload("Patient").First(&existing, existing.ID)
	return c.JSON(existing)
}

// DeleteAppointment removes an appointment by ID.
func DeleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}
	return c.SendString("Appointment deleted successfully")
}

// GetAppointmentsByDoctor lists a doctor's appointments, optionally
// restricted to a start/end window.
func GetAppointmentsByDoctor(c *fiber.Ctx) error {
	return appointmentsByParty(c, "doctor_id", c.Params("doctorId"))
}

// GetAppointmentsByPatient lists a patient's appointments, optionally
// restricted to a start/end window.
func GetAppointmentsByPatient(c *fiber.Ctx) error {
	return appointmentsByParty(c, "patient_id", c.Params("patientId"))
}

func appointmentsByParty(c *fiber.Ctx, column, id string) error {
	query := db.DB.Preload("Doctor").Preload("Patient").Where(column+" = ?", id)

	if startRaw := c.Query("start"); startRaw != "" {
		start, err := utils.ParseDateTime(startRaw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid start time",
				Error:   err.Error(),
			})
		}
		end, err := utils.ParseDateTime(c.Query("end"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid end time",
				Error:   err.Error(),
			})
		}
		query = query.Where("appointment_date_time BETWEEN ? AND ?", start, end)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date_time").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	responses := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		responses = append(responses, toAppointmentResponse(a))
	}
	return c.JSON(responses)
}

// GetAppointmentsByStatus lists appointments with the given status.
func GetAppointmentsByStatus(c *fiber.Ctx) error {
	status := c.Params("status")
	var appointments []models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Patient").
		Where("status = ?", status).Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

func referenceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrDoctorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	case errors.Is(err, ErrPatientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to validate references",
			Error:   err.Error(),
		})
	}
}
