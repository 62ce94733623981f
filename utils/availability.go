package utils

import (
	"time"

	"github.com/hasangurel/clinic-backend/db"
	"github.com/hasangurel/clinic-backend/models"
)

// CheckDoctorAvailability reports whether a doctor is free for the given
// time slot. Only SCHEDULED appointments count as conflicts; the candidate
// row is locked so two concurrent bookings cannot both pass the check.
func CheckDoctorAvailability(doctorID uint, startTime time.Time, duration time.Duration) (bool, error) {
	endTime := startTime.Add(duration)

	var existing models.Appointment
	err := db.DB.Raw(`
		SELECT *
		FROM appointments
		WHERE doctor_id = ? AND status = ? AND
			appointment_date_time < ? AND
			appointment_date_time + (duration_minutes * interval '1 minute') > ?
		FOR UPDATE
		LIMIT 1
	`, doctorID, models.StatusScheduled, endTime, startTime).
		Scan(&existing).Error

	if err == nil && existing.ID != 0 {
		return false, nil
	}

	return true, err
}
