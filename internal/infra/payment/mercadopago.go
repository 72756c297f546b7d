package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var ErrPayerEmail = errors.New("pix: payer email required")

// creator é o pedaço do cliente do Mercado Pago que usamos.
type creator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

type MercadoPago struct {
	client creator
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: payment.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreatePix(ctx context.Context, b models.Booking) (*domain.PixCharge, error) {
	if b.CustomerEmail == "" {
		return nil, ErrPayerEmail
	}

	amount, _ := b.Price.Float64()
	res, err := m.client.Create(ctx, payment.Request{
		TransactionAmount: amount,
		Description:       "Agendamento " + b.Service.Name,
		PaymentMethodID:   "pix",
		ExternalReference: strconv.FormatUint(uint64(b.ID), 10),
		Payer: &payment.PayerRequest{
			Email:     b.CustomerEmail,
			FirstName: b.CustomerName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago create pix: %w", err)
	}

	tx := res.PointOfInteraction.TransactionData
	return &domain.PixCharge{
		Reference:    strconv.Itoa(res.ID),
		Status:       res.Status,
		QRCode:       tx.QRCode,
		QRCodeBase64: tx.QRCodeBase64,
	}, nil
}

var _ domain.PaymentGateway = (*MercadoPago)(nil)
