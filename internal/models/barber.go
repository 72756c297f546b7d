package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string                      `gorm:"size:100;not null" json:"name"`
	Bio         string                      `gorm:"size:500" json:"bio"`
	PhotoURL    string                      `gorm:"size:255" json:"photo_url"`
	Rating      decimal.Decimal             `gorm:"type:numeric(3,2);default:0" json:"rating"`
	Specialties datatypes.JSONSlice[string] `json:"specialties"`
	Active      bool                        `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
