package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryUint lê um id opcional da query; ausente devolve nil.
func queryUint(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+key, "Parâmetro inválido: "+key+".")
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func queryDate(c *gin.Context, loc *time.Location) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return time.Time{}, false
	}
	date, err := timezone.ParseDate(raw, loc)
	if err != nil {
		httperr.BadRequest(c, domain.CodeInvalidDateTime, messageFor(domain.CodeInvalidDateTime))
		return time.Time{}, false
	}
	return date, true
}

// auditEvent monta o evento de auditoria com o usuário do token.
func auditEvent(c *gin.Context, action, entity string, entityID *uint, meta any) audit.Event {
	actor := middleware.Actor(c)
	return audit.Event{
		UserID:   actor.UserID,
		Role:     string(actor.Role),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	}
}
