package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type BookingListDTO struct {
	ID            uint            `json:"id"`
	StartsAt      time.Time       `json:"starts_at"`
	EndsAt        time.Time       `json:"ends_at"`
	Status        string          `json:"status"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	BarberID      uint            `json:"barber_id"`
	BarberName    string          `json:"barber_name"`
	ServiceName   string          `json:"service_name"`
	Price         decimal.Decimal `json:"price"`
	PaymentMethod string          `json:"payment_method"`
}

// BookingList converte para o fuso informado.
func BookingList(rows []models.Booking, loc *time.Location) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(rows))
	for _, b := range rows {
		out = append(out, BookingListDTO{
			ID:            b.ID,
			StartsAt:      b.StartsAt.In(loc),
			EndsAt:        b.EndsAt.In(loc),
			Status:        b.Status,
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
			BarberID:      b.BarberID,
			BarberName:    b.Barber.Name,
			ServiceName:   b.Service.Name,
			Price:         b.Price,
			PaymentMethod: b.PaymentMethod,
		})
	}
	return out
}
