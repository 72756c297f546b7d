package booking

import (
	"context"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type AvailabilityOptions struct {
	// IncludePast mantém horários que já passaram (visão do admin).
	IncludePast bool
}

type GetAvailability struct {
	repo     domain.Repository
	settings Settings
}

func NewGetAvailability(repo domain.Repository, settings Settings) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		settings: settings,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date time.Time,
	opts AvailabilityOptions,
) ([]time.Time, error) {

	loc := uc.settings.loc()
	day := timezone.StartOfDay(date.In(loc))

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, notFoundAs(err, domain.CodeServiceNotFound)
	}
	if !service.Active {
		return nil, httperr.ErrNotFound(domain.CodeServiceNotFound)
	}

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, notFoundAs(err, domain.CodeBarberNotFound)
	}
	if !barber.Active {
		return nil, httperr.ErrNotFound(domain.CodeBarberNotFound)
	}

	raw, err := uc.repo.GetBusinessHours(ctx)
	if err != nil {
		return nil, err
	}
	hours, err := domain.WorkHoursFrom(raw)
	if err != nil {
		if raw != nil {
			slog.ErrorContext(ctx, "business hours violate invariants", "err", err)
		}
		return []time.Time{}, nil
	}

	blocks, err := uc.repo.ListBlockedIntervals(ctx, barberID, day)
	if err != nil {
		return nil, err
	}
	blocked, err := domain.BlockIntervals(blocks, day)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListActiveBookings(ctx, barberID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	slots, err := domain.AvailableSlots(domain.AvailabilityInput{
		Day:      day,
		Hours:    &hours,
		Duration: time.Duration(service.DurationMin) * time.Minute,
		Step:     uc.settings.SlotStep,
		Blocked:  blocked,
		Busy:     domain.BusyIntervals(bookings),
	})
	if err != nil {
		return nil, err
	}

	if opts.IncludePast {
		return slots, nil
	}

	now := uc.settings.now()
	upcoming := slots[:0]
	for _, s := range slots {
		if !s.Before(now) {
			upcoming = append(upcoming, s)
		}
	}
	return upcoming, nil
}
