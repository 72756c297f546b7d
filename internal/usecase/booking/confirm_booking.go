package booking

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ConfirmBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings
	observer domain.Observer
}

func NewConfirmBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
	observer domain.Observer,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:     repo,
		audit:    audit,
		settings: settings,
		observer: observer,
	}
}

func (uc *ConfirmBooking) Execute(
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

	from := domain.Status(b.Status)
	now := uc.settings.now()
	if err := domain.Confirm(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBookingStatus(ctx, b.ID, from, domain.StatusConfirmed, now); err != nil {
		return nil, notFoundAs(err, domain.CodeBookingNotFound)
	}

	userID, role := actorAudit(actor)
	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Role:     role,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	if uc.observer != nil {
		uc.observer.BookingChanged(ctx, domain.EventConfirmed, *b)
	}

	return b, nil
}
