package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/realtime"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type WSHandler struct {
	hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler { return &WSHandler{hub: hub} }

// Bookings abre o canal de eventos de agenda do painel. Auth já rodou.
func (h *WSHandler) Bookings(c *gin.Context) {
	actor := middleware.Actor(c)
	if !actor.Privileged() {
		httperr.Forbidden(c, "forbidden", messageFor("forbidden"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := h.hub.Register(conn, actor)

	// o painel só escuta; a leitura serve para detectar o fechamento
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.hub.Unregister(client)
			return
		}
	}
}
