package booking

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	EventCreated   = "booking.created"
	EventConfirmed = "booking.confirmed"
	EventCanceled  = "booking.canceled"
)

// Observer recebe as mudanças de booking depois do commit (tempo real,
// notificações). Não pode bloquear nem falhar a requisição.
type Observer interface {
	BookingChanged(ctx context.Context, event string, b models.Booking)
}

// Observers repassa o evento para todos, na ordem.
type Observers []Observer

func (o Observers) BookingChanged(ctx context.Context, event string, b models.Booking) {
	for _, obs := range o {
		if obs != nil {
			obs.BookingChanged(ctx, event, b)
		}
	}
}

type PixCharge struct {
	Reference    string `json:"reference"`
	Status       string `json:"status"`
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
}

type PaymentGateway interface {
	CreatePix(ctx context.Context, b models.Booking) (*PixCharge, error)
}
