package models

import (
	"time"
)

// Medication is a single line item in a prescription.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// Prescription is stored as a JSON document in Redis, keyed by its own ID.
// The appointment/patient/doctor references are denormalized numeric fields
// with no enforced integrity against the relational entities.
type Prescription struct {
	ID               string       `json:"id"`
	AppointmentID    uint         `json:"appointment_id" validate:"required"`
	PatientID        uint         `json:"patient_id" validate:"required"`
	PatientName      string       `json:"patient_name" validate:"required"`
	DoctorID         uint         `json:"doctor_id" validate:"required"`
	DoctorName       string       `json:"doctor_name" validate:"required"`
	PrescriptionDate time.Time    `json:"prescription_date"`
	Diagnosis        string       `json:"diagnosis"`
	Medications      []Medication `json:"medications"`
	Instructions     string       `json:"instructions"`
	FollowUpDate     *time.Time   `json:"follow_up_date,omitempty"`
	Notes            string       `json:"notes"`
}
