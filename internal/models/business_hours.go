package models

import "time"

// BusinessHours é um singleton (uma única linha, ID 1).
type BusinessHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OpenTime   string `gorm:"size:5;not null" json:"open_time"`
	CloseTime  string `gorm:"size:5;not null" json:"close_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const BusinessHoursID uint = 1
