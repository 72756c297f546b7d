package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Channel é o canal Redis compartilhado entre as instâncias da API.
const Channel = "booking-events"

// Publisher implementa domain.Observer. Com Redis o evento passa pelo
// pub/sub e todas as instâncias entregam; sem Redis vai direto para o Hub.
type Publisher struct {
	hub *Hub
	rdb *redis.Client
}

func NewPublisher(hub *Hub, rdb *redis.Client) *Publisher {
	return &Publisher{hub: hub, rdb: rdb}
}

func (p *Publisher) BookingChanged(ctx context.Context, event string, b models.Booking) {
	data, err := json.Marshal(b)
	if err != nil {
		slog.ErrorContext(ctx, "marshal booking event", "err", err)
		return
	}
	msg := Message{Event: event, BarberID: b.BarberID, Data: data}

	if p.rdb == nil {
		p.hub.Broadcast(msg)
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		slog.ErrorContext(ctx, "marshal booking event", "err", err)
		return
	}
	// o request pode terminar antes do publish
	if err := p.rdb.Publish(context.WithoutCancel(ctx), Channel, payload).Err(); err != nil {
		slog.WarnContext(ctx, "publish booking event failed", "event", event, "err", err)
	}
}

// Run consome o canal Redis até ctx ser cancelado. Sem Redis retorna na hora.
func (p *Publisher) Run(ctx context.Context) {
	if p.rdb == nil {
		return
	}

	sub := p.rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			var msg Message
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				slog.Warn("invalid booking event payload", "err", err)
				continue
			}
			p.hub.Broadcast(msg)
		}
	}
}
