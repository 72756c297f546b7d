package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ReminderStore é implementado pelo repositório de bookings.
type ReminderStore interface {
	ListReminderDue(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	MarkReminderSent(ctx context.Context, id uint, at time.Time) (bool, error)
}

// Reminders avisa na véspera quem tem horário no dia seguinte.
type Reminders struct {
	store  ReminderStore
	sender Sender
	loc    *time.Location
	now    func() time.Time
}

func NewReminders(store ReminderStore, sender Sender, loc *time.Location) *Reminders {
	return &Reminders{
		store:  store,
		sender: sender,
		loc:    loc,
		now:    time.Now,
	}
}

// Schedule registra o job no fuso da barbearia. O chamador dá Start/Stop.
func (r *Reminders) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(r.loc))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if sent, err := r.SendNextDay(ctx); err != nil {
			slog.Error("reminders failed", "err", err)
		} else {
			slog.Info("reminders sent", "count", sent)
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", spec, err)
	}
	return c, nil
}

// SendNextDay envia um lembrete por booking ativo de amanhã. Falha de envio
// não marca o booking, então a próxima rodada tenta de novo.
func (r *Reminders) SendNextDay(ctx context.Context) (int, error) {
	from := timezone.StartOfDay(r.now().In(r.loc)).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	due, err := r.store.ListReminderDue(ctx, from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range due {
		body := fmt.Sprintf(
			"Lembrete: %s, amanhã você tem %s às %s com %s.",
			b.CustomerName, b.Service.Name, b.StartsAt.In(r.loc).Format(timezone.ClockLayout), b.Barber.Name,
		)
		if err := r.sender.Send(ctx, E164(b.CustomerPhone), body); err != nil {
			slog.WarnContext(ctx, "reminder failed", "booking_id", b.ID, "err", err)
			continue
		}

		ok, err := r.store.MarkReminderSent(ctx, b.ID, r.now())
		if err != nil {
			return sent, err
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}
