package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// scopeBarber resolve de qual barbeiro o ator pode listar. Barbeiro só vê a
// própria agenda; admin vê todas quando barberID é nil.
func scopeBarber(actor domain.Actor, barberID *uint) (*uint, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return barberID, nil
	case domain.RoleBarber:
		if actor.BarberID == nil {
			return nil, httperr.ErrPolicy(domain.CodeForbidden)
		}
		if barberID != nil && *barberID != *actor.BarberID {
			return nil, httperr.ErrPolicy(domain.CodeForbidden)
		}
		return actor.BarberID, nil
	default:
		return nil, httperr.ErrPolicy(domain.CodeForbidden)
	}
}

// ======================================================
// BY DATE
// ======================================================

type ListBookingsByDate struct {
	repo     domain.Repository
	settings Settings
}

func NewListBookingsByDate(repo domain.Repository, settings Settings) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo:     repo,
		settings: settings,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	actor domain.Actor,
	barberID *uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	scope, err := scopeBarber(actor, barberID)
	if err != nil {
		return nil, err
	}

	loc := uc.settings.loc()
	start := timezone.StartOfDay(date.In(loc))
	end := start.AddDate(0, 0, 1)

	rows, err := uc.repo.ListBookingsForPeriod(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}
	return dto.BookingList(rows, loc), nil
}

// ======================================================
// BY MONTH
// ======================================================

type ListBookingsByMonth struct {
	repo     domain.Repository
	settings Settings
}

func NewListBookingsByMonth(repo domain.Repository, settings Settings) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo:     repo,
		settings: settings,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	actor domain.Actor,
	barberID *uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrValidation(domain.CodeInvalidDateTime)
	}

	scope, err := scopeBarber(actor, barberID)
	if err != nil {
		return nil, err
	}

	loc := uc.settings.loc()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	rows, err := uc.repo.ListBookingsForPeriod(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}
	return dto.BookingList(rows, loc), nil
}

// ======================================================
// BY PHONE (público)
// ======================================================

type ListBookingsByPhone struct {
	repo     domain.Repository
	settings Settings
}

func NewListBookingsByPhone(repo domain.Repository, settings Settings) *ListBookingsByPhone {
	return &ListBookingsByPhone{
		repo:     repo,
		settings: settings,
	}
}

// Execute lista os bookings de hoje em diante do telefone informado.
func (uc *ListBookingsByPhone) Execute(
	ctx context.Context,
	phone string,
) ([]dto.BookingListDTO, error) {

	normalized, err := domain.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	from := timezone.StartOfDay(uc.settings.now())
	rows, err := uc.repo.ListBookingsByPhone(ctx, normalized, from)
	if err != nil {
		return nil, err
	}
	return dto.BookingList(rows, uc.settings.loc()), nil
}

// ======================================================
// GET
// ======================================================

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uint,
) (*models.Booking, error) {

	if !actor.Privileged() {
		return nil, httperr.ErrPolicy(domain.CodeForbidden)
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, notFoundAs(err, domain.CodeBookingNotFound)
	}
	if err := actor.CanManage(b.BarberID); err != nil {
		return nil, err
	}
	return b, nil
}
