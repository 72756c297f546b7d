package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type BusinessHoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBusinessHoursHandler(db *gorm.DB, audit *audit.Dispatcher) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db, audit: audit}
}

type BusinessHoursRequest struct {
	OpenTime   string `json:"open_time" binding:"required"`
	CloseTime  string `json:"close_time" binding:"required"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	var hours models.BusinessHours
	if err := h.db.WithContext(c.Request.Context()).
		First(&hours, models.BusinessHoursID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, httperr.ErrNotFound(domain.CodeHoursNotConfigured))
			return
		}
		httperr.Internal(c, "failed_to_get_business_hours", "Erro ao buscar horário de funcionamento.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update grava o expediente único da barbearia depois de validado.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var req BusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ctx := c.Request.Context()

	var hours models.BusinessHours
	if err := h.db.WithContext(ctx).First(&hours, models.BusinessHoursID).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "failed_to_get_business_hours", "Erro ao buscar horário de funcionamento.")
		return
	}

	hours.ID = models.BusinessHoursID
	hours.OpenTime = req.OpenTime
	hours.CloseTime = req.CloseTime
	hours.LunchStart = req.LunchStart
	hours.LunchEnd = req.LunchEnd

	if _, err := domain.WorkHoursFrom(&hours); err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.WithContext(ctx).Save(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Erro ao salvar horário de funcionamento.")
		return
	}

	h.audit.Dispatch(auditEvent(c, "business_hours_updated", "business_hours", &hours.ID, req))

	c.JSON(http.StatusOK, hours)
}
