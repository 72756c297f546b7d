package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type sent struct {
	to   string
	body string
}

type fakeSender struct {
	mu   sync.Mutex
	msgs []sent
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[to] {
		return errors.New("unreachable")
	}
	f.msgs = append(f.msgs, sent{to: to, body: body})
	return nil
}

func TestNotifier_SendsOnTransitions(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, time.UTC, 10)

	b := models.Booking{
		ID:            1,
		CustomerName:  "Maria",
		CustomerPhone: "11987654321",
		StartsAt:      time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		Service:       models.Service{Name: "Corte"},
	}
	n.BookingChanged(context.Background(), domain.EventCreated, b)
	n.BookingChanged(context.Background(), domain.EventConfirmed, b)
	n.BookingChanged(context.Background(), domain.EventCanceled, b)
	n.Close()

	if len(sender.msgs) != 2 {
		t.Fatalf("messages = %d, want 2 (created is silent)", len(sender.msgs))
	}
	if sender.msgs[0].to != "+5511987654321" {
		t.Fatalf("to = %s", sender.msgs[0].to)
	}
	if !strings.Contains(sender.msgs[0].body, "confirmado") || !strings.Contains(sender.msgs[0].body, "10/03 às 14:00") {
		t.Fatalf("body = %s", sender.msgs[0].body)
	}
	if !strings.Contains(sender.msgs[1].body, "cancelado") {
		t.Fatalf("body = %s", sender.msgs[1].body)
	}
}

func TestNotifier_DropsAfterClose(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, time.UTC, 10)
	n.Close()

	b := models.Booking{ID: 1, CustomerPhone: "11987654321"}
	n.BookingChanged(context.Background(), domain.EventConfirmed, b)
	n.Close()

	if len(sender.msgs) != 0 {
		t.Fatalf("messages = %d, want 0 after close", len(sender.msgs))
	}
}

type fakeStore struct {
	due    []models.Booking
	marked map[uint]bool
}

func (f *fakeStore) ListReminderDue(_ context.Context, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.due {
		if !b.StartsAt.Before(from) && b.StartsAt.Before(to) && !f.marked[b.ID] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkReminderSent(_ context.Context, id uint, _ time.Time) (bool, error) {
	if f.marked[id] {
		return false, nil
	}
	f.marked[id] = true
	return true, nil
}

func TestReminders_SendNextDay(t *testing.T) {
	tomorrow := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{
		marked: map[uint]bool{},
		due: []models.Booking{
			{ID: 1, CustomerPhone: "11911111111", StartsAt: tomorrow},
			{ID: 2, CustomerPhone: "11922222222", StartsAt: tomorrow.Add(2 * time.Hour)},
			{ID: 3, CustomerPhone: "11933333333", StartsAt: tomorrow.AddDate(0, 0, 1)},
		},
	}
	sender := &fakeSender{fail: map[string]bool{"+5511922222222": true}}

	r := NewReminders(store, sender, time.UTC)
	r.now = func() time.Time { return time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC) }

	count, err := r.SendNextDay(context.Background())
	if err != nil {
		t.Fatalf("SendNextDay: %v", err)
	}
	if count != 1 || !store.marked[1] {
		t.Fatalf("count = %d marked = %v", count, store.marked)
	}
	if store.marked[2] {
		t.Fatalf("failed send must not be marked")
	}

	// segunda rodada não duplica, mas tenta de novo o que falhou
	sender.fail = nil
	count, _ = r.SendNextDay(context.Background())
	if count != 1 || !store.marked[2] {
		t.Fatalf("retry count = %d marked = %v", count, store.marked)
	}
}

func TestReminders_ScheduleRejectsBadSpec(t *testing.T) {
	r := NewReminders(&fakeStore{}, LogSender{}, time.UTC)
	if _, err := r.Schedule("every day"); err == nil {
		t.Fatalf("expected cron parse error")
	}
	c, err := r.Schedule("0 18 * * *")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("entries = %d", len(c.Entries()))
	}
}

type fakeTwilio struct {
	params *twilioApi.CreateMessageParams
}

func (f *fakeTwilio) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = p
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSender(t *testing.T) {
	api := &fakeTwilio{}
	s := &TwilioSender{api: api, from: "+15550001111"}

	if err := s.Send(context.Background(), "+5511987654321", "oi"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if *api.params.To != "+5511987654321" || *api.params.From != "+15550001111" || *api.params.Body != "oi" {
		t.Fatalf("params = %+v", api.params)
	}
}
