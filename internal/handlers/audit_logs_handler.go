package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

// List filtra por ação, entidade, papel, usuário e período (from/to
// inclusivos, no fuso da barbearia).
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	userID, ok := queryUint(c, "user_id")
	if !ok {
		return
	}
	entityID, ok := queryUint(c, "entity_id")
	if !ok {
		return
	}

	q := h.db.
		WithContext(c.Request.Context()).
		Model(&models.AuditLog{})

	for column, value := range map[string]string{
		"action": c.Query("action"),
		"entity": c.Query("entity"),
		"role":   c.Query("role"),
	} {
		if value != "" {
			q = q.Where(column+" = ?", value)
		}
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}

	if raw := c.Query("from"); raw != "" {
		from, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inicial inválida.")
			return
		}
		q = q.Where("created_at >= ?", from.UTC())
	}
	if raw := c.Query("to"); raw != "" {
		to, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Data final inválida.")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, page, limit, total, logs)
}
