package booking

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Actor domain.Actor

	ServiceID uint
	BarberID  uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Date string
	Time string

	// Só admin/barbeiro podem sobrescrever; cliente usa o serviço.
	DurationMin *int
	Price       *decimal.Decimal
	Status      string

	PaymentMethod string
	Notes         string
}

type CreateBookingResult struct {
	Booking *models.Booking   `json:"booking"`
	Pix     *domain.PixCharge `json:"pix,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings
	observer domain.Observer
	payments domain.PaymentGateway
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
	observer domain.Observer,
	payments domain.PaymentGateway,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		settings: settings,
		observer: observer,
		payments: payments,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// 1️⃣ Dados do cliente e pagamento
	// --------------------------------------------------
	name := strings.TrimSpace(in.CustomerName)
	if name == "" || in.ServiceID == 0 || in.BarberID == 0 {
		return nil, httperr.ErrValidation(domain.CodeMissingField)
	}

	phone, err := domain.NormalizePhone(in.CustomerPhone)
	if err != nil {
		return nil, err
	}

	var email string
	if strings.TrimSpace(in.CustomerEmail) != "" {
		var ok bool
		if email, ok = validators.NormalizeEmail(in.CustomerEmail); !ok {
			return nil, httperr.ErrValidation(domain.CodeInvalidEmail)
		}
	}

	method, err := domain.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	status, err := domain.InitialStatus(in.Actor, domain.Status(in.Status))
	if err != nil {
		return nil, err
	}

	if in.Actor.Privileged() {
		if err := in.Actor.CanManage(in.BarberID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	loc := uc.settings.loc()
	start, err := timezone.ParseDateTime(in.Date, in.Time, loc)
	if err != nil {
		return nil, httperr.ErrValidation(domain.CodeInvalidDateTime)
	}

	now := uc.settings.now()
	if start.Before(now) {
		return nil, httperr.ErrValidation(domain.CodeSlotInPast)
	}

	// --------------------------------------------------
	// 3️⃣ Serviço e barbeiro
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, domain.CodeServiceNotFound)
	}
	if !service.Active {
		return nil, httperr.ErrNotFound(domain.CodeServiceNotFound)
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, domain.CodeBarberNotFound)
	}
	if !barber.Active {
		return nil, httperr.ErrNotFound(domain.CodeBarberNotFound)
	}

	durationMin, price, err := snapshot(in, service)
	if err != nil {
		return nil, err
	}
	duration := time.Duration(durationMin) * time.Minute

	// --------------------------------------------------
	// 4️⃣ Expediente, almoço e bloqueios
	// --------------------------------------------------
	raw, err := uc.repo.GetBusinessHours(ctx)
	if err != nil {
		return nil, err
	}
	hours, err := domain.WorkHoursFrom(raw)
	if err != nil {
		return nil, err
	}

	day := timezone.StartOfDay(start)
	blocks, err := uc.repo.ListBlockedIntervals(ctx, in.BarberID, day)
	if err != nil {
		return nil, err
	}
	blocked, err := domain.BlockIntervals(blocks, day)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckSlot(domain.AvailabilityInput{
		Day:      day,
		Hours:    &hours,
		Duration: duration,
		Step:     uc.settings.SlotStep,
		Blocked:  blocked,
	}, start); err != nil {
		return nil, err
	}

	// cliente só escolhe horários da grade; a equipe encaixa livremente
	if !in.Actor.Privileged() {
		if err := domain.CheckGrid(hours, start, uc.settings.SlotStep); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 5️⃣ Criação (conflito checado dentro da transação)
	// --------------------------------------------------
	b := &models.Booking{
		ServiceID:     service.ID,
		BarberID:      barber.ID,
		CustomerName:  name,
		CustomerPhone: phone,
		CustomerEmail: email,
		StartsAt:      start,
		EndsAt:        start.Add(duration),
		DurationMin:   durationMin,
		Price:         price,
		Status:        string(status),
		PaymentMethod: string(method),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedBy:     string(in.Actor.Role),
	}
	if status == domain.StatusConfirmed {
		b.ConfirmedAt = &now
	}

	if err := uc.repo.CreateBooking(ctx, b, domain.CustomerInput{
		Name:  b.CustomerName,
		Phone: b.CustomerPhone,
		Email: b.CustomerEmail,
	}); err != nil {
		return nil, err
	}

	b.Service = *service
	b.Barber = *barber

	// --------------------------------------------------
	// 6️⃣ Auditoria e eventos
	// --------------------------------------------------
	userID, role := actorAudit(in.Actor)
	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Role:     role,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"status":    b.Status,
			"barber_id": b.BarberID,
			"starts_at": b.StartsAt,
		},
	})

	if uc.observer != nil {
		uc.observer.BookingChanged(ctx, domain.EventCreated, *b)
	}

	res := &CreateBookingResult{Booking: b}

	// --------------------------------------------------
	// 7️⃣ Pix (falha não desfaz o booking)
	// --------------------------------------------------
	if method == domain.PaymentPix && uc.payments != nil {
		charge, err := uc.payments.CreatePix(ctx, *b)
		if err != nil {
			slog.WarnContext(ctx, "pix charge failed", "booking_id", b.ID, "err", err)
			return res, nil
		}
		if err := uc.repo.SetPaymentReference(ctx, b.ID, charge.Reference); err != nil {
			slog.WarnContext(ctx, "store payment reference failed", "booking_id", b.ID, "err", err)
		}
		b.PaymentReference = charge.Reference
		res.Pix = charge
	}

	return res, nil
}

// snapshot decide duração e preço gravados no booking.
func snapshot(in CreateBookingInput, service *models.Service) (int, decimal.Decimal, error) {
	durationMin := service.DurationMin
	price := service.Price

	if !in.Actor.Privileged() {
		return durationMin, price, nil
	}

	if in.DurationMin != nil {
		if *in.DurationMin <= 0 {
			return 0, decimal.Zero, httperr.ErrValidation(domain.CodeInvalidDuration)
		}
		durationMin = *in.DurationMin
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return 0, decimal.Zero, httperr.ErrValidation(domain.CodeInvalidPrice)
		}
		price = *in.Price
	}
	return durationMin, price, nil
}
