package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	loc *time.Location

	availability *ucBooking.GetAvailability
	create       *ucBooking.CreateBooking
	confirm      *ucBooking.ConfirmBooking
	cancel       *ucBooking.CancelBooking
	get          *ucBooking.GetBooking
	listByDate   *ucBooking.ListBookingsByDate
	listByMonth  *ucBooking.ListBookingsByMonth
}

func NewBookingHandler(
	loc *time.Location,
	availability *ucBooking.GetAvailability,
	create *ucBooking.CreateBooking,
	confirm *ucBooking.ConfirmBooking,
	cancel *ucBooking.CancelBooking,
	get *ucBooking.GetBooking,
	listByDate *ucBooking.ListBookingsByDate,
	listByMonth *ucBooking.ListBookingsByMonth,
) *BookingHandler {
	return &BookingHandler{
		loc:          loc,
		availability: availability,
		create:       create,
		confirm:      confirm,
		cancel:       cancel,
		get:          get,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID     uint             `json:"service_id" binding:"required"`
	BarberID      uint             `json:"barber_id" binding:"required"`
	CustomerName  string           `json:"customer_name"`
	CustomerPhone string           `json:"customer_phone"`
	CustomerEmail string           `json:"customer_email"`
	Date          string           `json:"date" binding:"required"`
	Time          string           `json:"time" binding:"required"`
	DurationMin   *int             `json:"duration_min"`
	Price         *decimal.Decimal `json:"price"`
	Status        string           `json:"status"`
	PaymentMethod string           `json:"payment_method"`
	Notes         string           `json:"notes"`
}

// ======================================================
// AVAILABILITY (com horários passados)
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	availability(c, h.availability, h.loc, ucBooking.AvailabilityOptions{IncludePast: true})
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	res, err := h.create.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			Actor:         middleware.Actor(c),
			ServiceID:     req.ServiceID,
			BarberID:      req.BarberID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			Date:          req.Date,
			Time:          req.Time,
			DurationMin:   req.DurationMin,
			Price:         req.Price,
			Status:        req.Status,
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

// ======================================================
// LIST (dia ou mês)
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	actor := middleware.Actor(c)

	if c.Query("date") != "" {
		date, ok := queryDate(c, h.loc)
		if !ok {
			return
		}
		rows, err := h.listByDate.Execute(c.Request.Context(), actor, barberID, date)
		if err != nil {
			respondError(c, err)
			return
		}
		httpresp.List(c, rows)
		return
	}

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data ou o ano e o mês.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	rows, err := h.listByMonth.Execute(c.Request.Context(), actor, barberID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": rows,
	})
}

// ======================================================
// GET
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// CONFIRM
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	b, err := h.confirm.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
