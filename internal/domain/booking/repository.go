package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type CustomerInput struct {
	Name  string
	Phone string
	Email string
}

type Repository interface {
	// -------- Catalog --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	// -------- Availability --------

	// GetBusinessHours devolve (nil, nil) se o expediente não foi configurado.
	GetBusinessHours(ctx context.Context) (*models.BusinessHours, error)

	// ListBlockedIntervals devolve os bloqueios do barbeiro que valem no dia
	// (data específica, globais e recorrentes já resolvidos).
	ListBlockedIntervals(
		ctx context.Context,
		barberID uint,
		day time.Time,
	) ([]models.BlockedInterval, error)

	// ListActiveBookings ignora bookings cancelados.
	ListActiveBookings(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	// -------- Booking (create / state change) --------

	// CreateBooking revalida o horário e grava cliente + booking na mesma
	// transação. Conflito => ErrConflict(slot_unavailable), nada é gravado.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		customer CustomerInput,
	) error

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	// UpdateBookingStatus só aplica se o status atual ainda for `from`.
	UpdateBookingStatus(
		ctx context.Context,
		id uint,
		from Status,
		to Status,
		at time.Time,
	) error

	SetPaymentReference(ctx context.Context, id uint, reference string) error

	// -------- Customer --------
	UpsertCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error)
	// FindCustomerByPhone devolve (nil, nil) se o telefone não existe.
	FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)

	// -------- Listing --------
	ListBookingsForPeriod(
		ctx context.Context,
		barberID *uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	ListBookingsByPhone(
		ctx context.Context,
		phone string,
		from time.Time,
	) ([]models.Booking, error)
}
