package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BlockScope string

const (
	BlockScopeDate      BlockScope = "date"
	BlockScopeGlobal    BlockScope = "global"
	BlockScopeRecurring BlockScope = "recurring"
)

// BlockedInterval bloqueia a agenda de um barbeiro entre StartTime e EndTime
// (HH:MM). Datas no formato YYYY-MM-DD.
type BlockedInterval struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"not null;index" json:"barber_id"`

	StartTime string     `gorm:"size:5;not null" json:"start_time"`
	EndTime   string     `gorm:"size:5;not null" json:"end_time"`
	Label     string     `gorm:"size:100" json:"label"`
	Scope     BlockScope `gorm:"size:20;not null;index" json:"scope"`

	Date string `gorm:"size:10;index" json:"date,omitempty"`

	RangeStart string                   `gorm:"size:10" json:"range_start,omitempty"`
	RangeEnd   string                   `gorm:"size:10" json:"range_end,omitempty"`
	Weekdays   datatypes.JSONSlice[int] `json:"weekdays,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
