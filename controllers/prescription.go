package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/hasangurel/clinic-backend/models"
	"github.com/hasangurel/clinic-backend/redis"
	"github.com/hasangurel/clinic-backend/utils"
)

const (
	prescriptionKeyPrefix = "prescription:"
	prescriptionIndexKey  = "prescriptions"
)

func savePrescription(p *models.Prescription) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := redis.Client.Set(redis.Ctx, prescriptionKeyPrefix+p.ID, data, 0).Err(); err != nil {
		return err
	}
	return redis.Client.SAdd(redis.Ctx, prescriptionIndexKey, p.ID).Err()
}

func loadPrescription(id string) (*models.Prescription, error) {
	data, err := redis.Client.Get(redis.Ctx, prescriptionKeyPrefix+id).Bytes()
	if err != nil {
		return nil, err
	}
	var p models.Prescription
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func loadAllPrescriptions() ([]models.Prescription, error) {
	ids, err := redis.Client.SMembers(redis.Ctx, prescriptionIndexKey).Result()
	if err != nil {
		return nil, err
	}

	prescriptions := make([]models.Prescription, 0, len(ids))
	for _, id := range ids {
		p, err := loadPrescription(id)
		if errors.Is(err, goredis.Nil) {
			// index entry without a document, drop it
			redis.Client.SRem(redis.Ctx, prescriptionIndexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, *p)
	}
	return prescriptions, nil
}

func filterPrescriptions(keep func(models.Prescription) bool) ([]models.Prescription, error) {
	all, err := loadAllPrescriptions()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Prescription, 0, len(all))
	for _, p := range all {
		if keep(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetAllPrescriptions returns every prescription document. Admin only.
func GetAllPrescriptions(c *fiber.Ctx) error {
	prescriptions, err := loadAllPrescriptions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescriptions",
			Error:   err.Error(),
		})
	}
	return c.JSON(prescriptions)
}

// GetPrescription returns a prescription by ID.
func GetPrescription(c *fiber.Ctx) error {
	id := c.Params("id")
	p, err := loadPrescription(id)
	if errors.Is(err, goredis.Nil) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
			Error:   err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescription",
			Error:   err.Error(),
		})
	}
	return c.JSON(p)
}

// CreatePrescription stores a new prescription document. Doctor only.
func CreatePrescription(c *fiber.Ctx) error {
	prescription := new(models.Prescription)
	if err := c.BodyParser(prescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(prescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Validation failed",
			Error:   err.Error(),
		})
	}

	prescription.ID = uuid.NewString()
	if prescription.PrescriptionDate.IsZero() {
		prescription.PrescriptionDate = time.Now()
	}

	if err := savePrescription(prescription); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create prescription",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(prescription)
}

// UpdatePrescription replaces an existing prescription document. Doctor only.
func UpdatePrescription(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := loadPrescription(id); err != nil {
		if errors.Is(err, goredis.Nil) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Prescription not found",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescription",
			Error:   err.Error(),
		})
	}

	prescription := new(models.Prescription)
	if err := c.BodyParser(prescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(prescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Validation failed",
			Error:   err.Error(),
		})
	}
	prescription.ID = id

	if err := savePrescription(prescription); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update prescription",
			Error:   err.Error(),
		})
	}
	return c.JSON(prescription)
}

// DeletePrescription removes a prescription document. Doctor only.
func DeletePrescription(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := loadPrescription(id); err != nil {
		if errors.Is(err, goredis.Nil) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Prescription not found",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescription",
			Error:   err.Error(),
		})
	}

	if err := redis.Client.Del(redis.Ctx, prescriptionKeyPrefix+id).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete prescription",
			Error:   err.Error(),
		})
	}
	redis.Client.SRem(redis.Ctx, prescriptionIndexKey, id)

	return c.SendString("Prescription deleted successfully")
}

// GetPrescriptionsByPatient lists prescriptions for one patient.
func GetPrescriptionsByPatient(c *fiber.Ctx) error {
	patientID, err := c.ParamsInt("patientId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid patient ID",
			Error:   err.Error(),
		})
	}
	return prescriptionList(c, func(p models.Prescription) bool {
		return p.PatientID == uint(patientID)
	})
}

// GetPrescriptionsByDoctor lists prescriptions written by one doctor.
func GetPrescriptionsByDoctor(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctorId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor ID",
			Error:   err.Error(),
		})
	}
	return prescriptionList(c, func(p models.Prescription) bool {
		return p.DoctorID == uint(doctorID)
	})
}

// GetPrescriptionsByAppointment lists prescriptions tied to one appointment.
func GetPrescriptionsByAppointment(c *fiber.Ctx) error {
	appointmentID, err := c.ParamsInt("appointmentId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
			Error:   err.Error(),
		})
	}
	return prescriptionList(c, func(p models.Prescription) bool {
		return p.AppointmentID == uint(appointmentID)
	})
}

// SearchPrescriptions finds prescriptions by patient name substring,
// case-insensitively.
func SearchPrescriptions(c *fiber.Ctx) error {
	patientName := strings.ToLower(c.Query("patientName"))
	return prescriptionList(c, func(p models.Prescription) bool {
		return strings.Contains(strings.ToLower(p.PatientName), patientName)
	})
}

func prescriptionList(c *fiber.Ctx, keep func(models.Prescription) bool) error {
	prescriptions, err := filterPrescriptions(keep)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescriptions",
			Error:   err.Error(),
		})
	}
	return c.JSON(prescriptions)
}
