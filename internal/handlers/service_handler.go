package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ServiceHandler struct {
	db      *gorm.DB
	catalog *cache.Catalog
	audit   *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, catalog *cache.Catalog, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, catalog: catalog, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Model(&models.Service{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if req.DurationMin <= 0 {
		respondError(c, httperr.ErrValidation(domain.CodeInvalidDuration))
		return
	}
	if req.Price.IsNegative() {
		respondError(c, httperr.ErrValidation(domain.CodeInvalidPrice))
		return
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Active:      true,
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	h.catalog.Invalidate(ctx, cache.KeyPublicServices)
	h.audit.Dispatch(auditEvent(c, "service_created", "service", &service.ID, nil))

	c.JSON(http.StatusCreated, service)
}

// Update só afeta bookings futuros: os antigos guardam duração e preço.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var service models.Service
	if err := h.db.WithContext(ctx).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, httperr.ErrNotFound(domain.CodeServiceNotFound))
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			respondError(c, httperr.ErrValidation(domain.CodeInvalidDuration))
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			respondError(c, httperr.ErrValidation(domain.CodeInvalidPrice))
			return
		}
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(ctx).Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	h.catalog.Invalidate(ctx, cache.KeyPublicServices)
	h.audit.Dispatch(auditEvent(c, "service_updated", "service", &service.ID, req))

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	res := h.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao remover serviço.")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, httperr.ErrNotFound(domain.CodeServiceNotFound))
		return
	}

	h.catalog.Invalidate(ctx, cache.KeyPublicServices)
	h.audit.Dispatch(auditEvent(c, "service_deleted", "service", &id, nil))

	c.Status(http.StatusNoContent)
}
