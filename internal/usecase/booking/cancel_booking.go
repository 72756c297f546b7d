package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// CancelBooking é o cancelamento pelo back office: sem janela de antecedência.
type CancelBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings
	observer domain.Observer
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
	observer domain.Observer,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    audit,
		settings: settings,
		observer: observer,
	}
}

func (uc *CancelBooking) Execute(
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

	return cancel(ctx, uc.repo, uc.audit, uc.observer, actor, b, uc.settings.now())
}

// CancelByCustomer exige o telefone usado na criação e respeita a
// antecedência mínima.
type CancelByCustomer struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings
	observer domain.Observer
}

func NewCancelByCustomer(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
	observer domain.Observer,
) *CancelByCustomer {
	return &CancelByCustomer{
		repo:     repo,
		audit:    audit,
		settings: settings,
		observer: observer,
	}
}

func (uc *CancelByCustomer) Execute(
	ctx context.Context,
	bookingID uint,
	phone string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, notFoundAs(err, domain.CodeBookingNotFound)
	}

	now := uc.settings.now()
	if err := domain.CheckCustomerCancel(b, phone, now, uc.settings.MinCancelNotice); err != nil {
		return nil, err
	}

	return cancel(ctx, uc.repo, uc.audit, uc.observer, domain.CustomerActor(), b, now)
}

func cancel(
	ctx context.Context,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	observer domain.Observer,
	actor domain.Actor,
	b *models.Booking,
	now time.Time,
) (*models.Booking, error) {

	from := domain.Status(b.Status)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := repo.UpdateBookingStatus(ctx, b.ID, from, domain.StatusCanceled, now); err != nil {
		return nil, notFoundAs(err, domain.CodeBookingNotFound)
	}

	userID, role := actorAudit(actor)
	dispatcher.Dispatch(audit.Event{
		UserID:   userID,
		Role:     role,
		Action:   "booking_canceled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"from": string(from)},
	})

	if observer != nil {
		observer.BookingChanged(ctx, domain.EventCanceled, *b)
	}

	return b, nil
}
