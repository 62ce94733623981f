package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

type Appointment struct {
	ID                  uint              `json:"id" gorm:"primaryKey"`
	DoctorID            uint              `json:"doctor_id" gorm:"not null"`
	Doctor              Doctor            `json:"doctor" gorm:"foreignKey:DoctorID"`
	PatientID           uint              `json:"patient_id" gorm:"not null"`
	Patient             Patient           `json:"patient" gorm:"foreignKey:PatientID"`
	AppointmentDateTime time.Time         `json:"appointment_date_time" gorm:"not null"`
	DurationMinutes     int               `json:"duration_minutes" gorm:"default:30"`
	Status              AppointmentStatus `json:"status" gorm:"size:20"`
	Reason              string            `json:"reason"`
	Notes               string            `json:"notes"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.DurationMinutes == 0 {
		a.DurationMinutes = 30
	}
	return nil
}

// EndTime returns when the appointment finishes.
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentDateTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
