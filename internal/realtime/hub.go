package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
)

const writeWait = 10 * time.Second

// Message é o envelope enviado aos painéis.
type Message struct {
	Event    string          `json:"event"`
	BarberID uint            `json:"barber_id"`
	Data     json.RawMessage `json:"data"`
}

// Hub guarda as conexões abertas dos painéis admin/barbeiro.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// Client serializa as escritas da conexão.
type Client struct {
	conn  *websocket.Conn
	actor domain.Actor
	mu    sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(conn *websocket.Conn, actor domain.Actor) *Client {
	c := &Client{conn: conn, actor: actor}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast entrega a mensagem a quem pode ver a agenda do barbeiro.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.actor.CanManage(msg.BarberID) == nil {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(msg); err != nil {
			slog.Warn("ws write failed", "event", msg.Event, "err", err)
			h.Unregister(c)
		}
	}
}

func (c *Client) write(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// CloseAll derruba todas as conexões (shutdown).
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}
