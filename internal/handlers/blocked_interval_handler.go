package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// BlockedIntervalHandler: admin mexe em qualquer agenda, barbeiro só na dele.
type BlockedIntervalHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewBlockedIntervalHandler(
	db *gorm.DB,
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *BlockedIntervalHandler {
	return &BlockedIntervalHandler{db: db, repo: repo, audit: audit, loc: loc}
}

type BlockedIntervalRequest struct {
	BarberID   uint   `json:"barber_id"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Label      string `json:"label"`
	Scope      string `json:"scope" binding:"required"`
	Date       string `json:"date"`
	RangeStart string `json:"range_start"`
	RangeEnd   string `json:"range_end"`
	Weekdays   []int  `json:"weekdays"`
}

// targetBarber resolve de qual agenda se trata. Barbeiro sem barber_id
// explícito usa a própria.
func targetBarber(actor domain.Actor, requested *uint) (uint, error) {
	if requested == nil {
		if actor.Role == domain.RoleBarber && actor.BarberID != nil {
			return *actor.BarberID, nil
		}
		return 0, httperr.ErrValidation(domain.CodeMissingField)
	}
	if err := actor.CanManage(*requested); err != nil {
		return 0, err
	}
	return *requested, nil
}

func (h *BlockedIntervalHandler) List(c *gin.Context) {
	requested, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}

	barberID, err := targetBarber(middleware.Actor(c), requested)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	if c.Query("date") != "" {
		day, ok := queryDate(c, h.loc)
		if !ok {
			return
		}
		rows, err := h.repo.ListBlockedIntervals(ctx, barberID, day)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}

	var rows []models.BlockedInterval
	if err := h.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("scope ASC, date ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocked_intervals", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *BlockedIntervalHandler) Create(c *gin.Context) {
	var req BlockedIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	var requested *uint
	if req.BarberID != 0 {
		requested = &req.BarberID
	}

	actor := middleware.Actor(c)
	barberID, err := targetBarber(actor, requested)
	if err != nil {
		respondError(c, err)
		return
	}

	block := models.BlockedInterval{
		BarberID:   barberID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Label:      strings.TrimSpace(req.Label),
		Scope:      models.BlockScope(strings.ToLower(req.Scope)),
		Date:       req.Date,
		RangeStart: req.RangeStart,
		RangeEnd:   req.RangeEnd,
		Weekdays:   req.Weekdays,
	}

	if err := domain.ValidateBlockedInterval(&block); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	var barber models.Barber
	if err := h.db.WithContext(ctx).First(&barber, barberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, httperr.ErrNotFound(domain.CodeBarberNotFound))
			return
		}
		respondError(c, err)
		return
	}

	if err := h.db.WithContext(ctx).Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_blocked_interval", "Erro ao criar bloqueio.")
		return
	}

	h.audit.Dispatch(auditEvent(c, "blocked_interval_created", "blocked_interval", &block.ID, gin.H{
		"barber_id": block.BarberID,
		"scope":     block.Scope,
	}))

	c.JSON(http.StatusCreated, block)
}

func (h *BlockedIntervalHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var block models.BlockedInterval
	if err := h.db.WithContext(ctx).First(&block, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "blocked_interval_not_found", "Bloqueio não encontrado.")
			return
		}
		respondError(c, err)
		return
	}

	if err := middleware.Actor(c).CanManage(block.BarberID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.WithContext(ctx).Delete(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_blocked_interval", "Erro ao remover bloqueio.")
		return
	}

	h.audit.Dispatch(auditEvent(c, "blocked_interval_deleted", "blocked_interval", &block.ID, nil))

	c.Status(http.StatusNoContent)
}
