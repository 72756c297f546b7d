package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type job struct {
	to   string
	body string
}

// Notifier envia SMS de confirmação/cancelamento fora do request.
// Fila cheia descarta a mensagem, nunca segura a API.
type Notifier struct {
	sender Sender
	loc    *time.Location
	queue  chan job
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewNotifier(sender Sender, loc *time.Location, buffer int) *Notifier {
	n := &Notifier{
		sender: sender,
		loc:    loc,
		queue:  make(chan job, buffer),
	}

	n.wg.Add(1)
	go n.worker()
	return n
}

func (n *Notifier) worker() {
	defer n.wg.Done()

	for j := range n.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := n.sender.Send(ctx, j.to, j.body); err != nil {
			slog.Warn("sms failed", "err", err)
		}
		cancel()
	}
}

func (n *Notifier) BookingChanged(ctx context.Context, event string, b models.Booking) {
	var body string
	switch event {
	case domain.EventConfirmed:
		body = fmt.Sprintf(
			"Olá %s! Seu horário de %s em %s está confirmado.",
			b.CustomerName, b.Service.Name, formatWhen(b.StartsAt, n.loc),
		)
	case domain.EventCanceled:
		body = fmt.Sprintf(
			"Olá %s, seu horário de %s em %s foi cancelado.",
			b.CustomerName, b.Service.Name, formatWhen(b.StartsAt, n.loc),
		)
	default:
		return
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		slog.WarnContext(ctx, "notifier closed, dropping message", "booking_id", b.ID)
		return
	}

	select {
	case n.queue <- job{to: E164(b.CustomerPhone), body: body}:
	default:
		slog.WarnContext(ctx, "sms queue full, dropping message", "booking_id", b.ID)
	}
}

// Close drena a fila; mensagens posteriores são descartadas.
func (n *Notifier) Close() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	n.wg.Wait()
}

func formatWhen(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01 às " + timezone.ClockLayout)
}
