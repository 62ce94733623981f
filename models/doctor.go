package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores an ordered list of strings as a JSONB column.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal StringList: unsupported type %T", value)
	}

	return json.Unmarshal(data, l)
}

type Doctor struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"not null" validate:"required,min=2,max=100"`
	Specialty       string     `json:"specialty" gorm:"not null" validate:"required"`
	Email           string     `json:"email" gorm:"unique" validate:"omitempty,email"`
	Phone           string     `json:"phone"`
	Qualifications  string     `json:"qualifications"`
	ExperienceYears int        `json:"experience_years"`
	Username        string     `json:"username" gorm:"unique;not null" validate:"required,min=3,max=50"`
	Password        string     `json:"password,omitempty" gorm:"not null" validate:"required,min=6"`
	AvailableTimes  StringList `json:"available_times" gorm:"type:jsonb"`
	ConsultationFee float64    `json:"consultation_fee"`
	AvatarURL       string     `json:"avatar_url"`
	IsActive        *bool      `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
