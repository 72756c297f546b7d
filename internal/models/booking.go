package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	BarberID uint   `gorm:"not null;index:idx_bookings_barber_start,priority:1" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber"`

	CustomerID    *uint  `json:"customer_id"`
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null;index" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	StartsAt    time.Time       `gorm:"not null;index:idx_bookings_barber_start,priority:2" json:"starts_at"`
	EndsAt      time.Time       `gorm:"not null" json:"ends_at"`
	DurationMin int             `gorm:"not null" json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	Status           string `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentMethod    string `gorm:"size:20;not null" json:"payment_method"`
	PaymentReference string `gorm:"size:64" json:"payment_reference,omitempty"`
	Notes            string `gorm:"size:500" json:"notes"`
	CreatedBy        string `gorm:"size:20;not null" json:"created_by"`

	ConfirmedAt    *time.Time `json:"confirmed_at"`
	CanceledAt     *time.Time `json:"canceled_at"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
