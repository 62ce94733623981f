package models

import (
	"time"
)

type Patient struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"not null" validate:"required,min=2,max=100"`
	Email            string     `json:"email" gorm:"unique;not null" validate:"required,email"`
	Phone            string     `json:"phone"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           string     `json:"gender"`
	Address          string     `json:"address"`
	BloodGroup       string     `json:"blood_group"`
	MedicalHistory   string     `json:"medical_history"`
	Username         string     `json:"username" gorm:"unique;not null" validate:"required,min=3,max=50"`
	Password         string     `json:"password,omitempty" gorm:"not null" validate:"required,min=6"`
	EmergencyContact string     `json:"emergency_contact"`
	IsActive         *bool      `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
