package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/media"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const maxPhotoBytes = 5 << 20

type BarberHandler struct {
	db      *gorm.DB
	catalog *cache.Catalog
	audit   *audit.Dispatcher
	photos  storage.ObjectStore
}

// photos pode ser nil quando o S3 não está configurado.
func NewBarberHandler(
	db *gorm.DB,
	catalog *cache.Catalog,
	audit *audit.Dispatcher,
	photos storage.ObjectStore,
) *BarberHandler {
	return &BarberHandler{db: db, catalog: catalog, audit: audit, photos: photos}
}

type BarberRequest struct {
	Name        *string  `json:"name"`
	Bio         *string  `json:"bio"`
	Specialties []string `json:"specialties"`
	Active      *bool    `json:"active"`
}

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		invalidRequest(c)
		return
	}

	barber := models.Barber{
		Name:        strings.TrimSpace(*req.Name),
		Specialties: req.Specialties,
		Active:      true,
	}
	if req.Bio != nil {
		barber.Bio = *req.Bio
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	h.catalog.Invalidate(ctx, cache.KeyPublicBarbers)
	h.audit.Dispatch(auditEvent(c, "barber_created", "barber", &barber.ID, nil))

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			invalidRequest(c)
			return
		}
		barber.Name = name
	}
	if req.Bio != nil {
		barber.Bio = *req.Bio
	}
	if req.Specialties != nil {
		barber.Specialties = req.Specialties
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	h.catalog.Invalidate(ctx, cache.KeyPublicBarbers)
	h.audit.Dispatch(auditEvent(c, "barber_updated", "barber", &barber.ID, req))

	c.JSON(http.StatusOK, barber)
}

// Delete é lógico: bookings antigos continuam apontando para o barbeiro.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	res := h.db.WithContext(ctx).Delete(&models.Barber{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Erro ao remover barbeiro.")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, httperr.ErrNotFound(domain.CodeBarberNotFound))
		return
	}

	h.catalog.Invalidate(ctx, cache.KeyPublicBarbers)
	h.audit.Dispatch(auditEvent(c, "barber_deleted", "barber", &id, nil))

	c.Status(http.StatusNoContent)
}

// UploadPhoto converte a foto para WebP 512x512 e grava no bucket.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "photo_storage_disabled", "Armazenamento de fotos não configurado.")
		return
	}

	barber, ok := h.load(c)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie a foto no campo 'photo'.")
		return
	}
	if file.Size > maxPhotoBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "photo_too_large", "A foto deve ter no máximo 5 MB.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Não foi possível ler a foto.")
		return
	}
	defer f.Close()

	body, err := media.ToWebP(f, media.MaxSide, media.WebPQuality)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			httperr.BadRequest(c, "invalid_photo", "Formato de imagem não suportado.")
			return
		}
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("barbers/%d/%s.webp", barber.ID, uuid.NewString())

	url, err := h.photos.Put(ctx, key, media.ContentType, body)
	if err != nil {
		respondError(c, fmt.Errorf("upload barber photo: %w", err))
		return
	}

	if err := h.db.WithContext(ctx).
		Model(barber).
		Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	h.catalog.Invalidate(ctx, cache.KeyPublicBarbers)
	h.audit.Dispatch(auditEvent(c, "barber_photo_updated", "barber", &barber.ID, gin.H{"key": key}))

	c.JSON(http.StatusOK, barber)
}

func (h *BarberHandler) load(c *gin.Context) (*models.Barber, bool) {
	id, ok := paramID(c)
	if !ok {
		return nil, false
	}

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, httperr.ErrNotFound(domain.CodeBarberNotFound))
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return nil, false
	}
	return &barber, true
}
