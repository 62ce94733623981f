package models

import (
	"testing"
	"time"
)

func TestStringListScanRoundTrip(t *testing.T) {
	slots := StringList{"09:00-10:00", "10:00-11:00"}
	value, err := slots.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded StringList
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != "09:00-10:00" || decoded[1] != "10:00-11:00" {
		t.Fatalf("round trip mismatch: %v", decoded)
	}

	var fromNil StringList
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if fromNil != nil {
		t.Fatalf("scan nil should leave list empty, got %v", fromNil)
	}
}

func TestAppointmentDefaultsAndEndTime(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	a := Appointment{AppointmentDateTime: start}

	if err := a.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Fatalf("status = %q, want SCHEDULED", a.Status)
	}
	if a.DurationMinutes != 30 {
		t.Fatalf("duration = %d, want 30", a.DurationMinutes)
	}
	if got := a.EndTime(); !got.Equal(start.Add(30 * time.Minute)) {
		t.Fatalf("end time = %v", got)
	}
}
