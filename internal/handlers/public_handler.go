package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db      *gorm.DB
	catalog *cache.Catalog
	loc     *time.Location

	availability *ucBooking.GetAvailability
	create       *ucBooking.CreateBooking
	cancel       *ucBooking.CancelByCustomer
	listByPhone  *ucBooking.ListBookingsByPhone
}

func NewPublicHandler(
	db *gorm.DB,
	catalog *cache.Catalog,
	loc *time.Location,
	availability *ucBooking.GetAvailability,
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelByCustomer,
	listByPhone *ucBooking.ListBookingsByPhone,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		catalog:      catalog,
		loc:          loc,
		availability: availability,
		create:       create,
		cancel:       cancel,
		listByPhone:  listByPhone,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ServiceID     uint   `json:"service_id" binding:"required"`
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type PublicCancelRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type publicService struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

type publicBarber struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Bio         string          `json:"bio"`
	PhotoURL    string          `json:"photo_url"`
	Rating      decimal.Decimal `json:"rating"`
	Specialties []string        `json:"specialties"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	ctx := c.Request.Context()
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	var out []publicService
	if category == "" && h.catalog.Get(ctx, cache.KeyPublicServices, &out) {
		httpresp.List(c, out)
		return
	}

	q := h.db.WithContext(ctx).Where("active = ?", true)
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var services []models.Service
	if err := q.Order("category ASC, name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	out = make([]publicService, 0, len(services))
	for _, s := range services {
		out = append(out, publicService{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			DurationMin: s.DurationMin,
			Price:       s.Price,
			Category:    s.Category,
		})
	}

	if category == "" {
		h.catalog.Set(ctx, cache.KeyPublicServices, out)
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	ctx := c.Request.Context()

	var out []publicBarber
	if h.catalog.Get(ctx, cache.KeyPublicBarbers, &out) {
		httpresp.List(c, out)
		return
	}

	var barbers []models.Barber
	if err := h.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out = make([]publicBarber, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, publicBarber{
			ID:          b.ID,
			Name:        b.Name,
			Bio:         b.Bio,
			PhotoURL:    b.PhotoURL,
			Rating:      b.Rating,
			Specialties: b.Specialties,
		})
	}

	h.catalog.Set(ctx, cache.KeyPublicBarbers, out)
	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	availability(c, h.availability, h.loc, ucBooking.AvailabilityOptions{})
}

// availability é compartilhado com o back office, que só muda as opções.
func availability(
	c *gin.Context,
	uc *ucBooking.GetAvailability,
	loc *time.Location,
	opts ucBooking.AvailabilityOptions,
) {
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		return
	}
	if barberID == nil || serviceID == nil {
		httperr.BadRequest(c, "missing_params", "Barbeiro, serviço e data são obrigatórios.")
		return
	}

	date, ok := queryDate(c, loc)
	if !ok {
		return
	}

	slots, err := uc.Execute(c.Request.Context(), *barberID, *serviceID, date, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.In(loc).Format(timezone.ClockLayout))
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format(timezone.DateLayout),
		"slots": times,
	})
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	res, err := h.create.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			// o papel nunca vem do corpo da requisição
			Actor:         middleware.Actor(c),
			ServiceID:     req.ServiceID,
			BarberID:      req.BarberID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			Date:          req.Date,
			Time:          req.Time,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *PublicHandler) ListBookingsByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		httperr.BadRequest(c, "missing_phone", "Telefone obrigatório.")
		return
	}

	rows, err := h.listByPhone.Execute(c.Request.Context(), phone)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), id, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
