package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// Serviços e barbeiros removidos continuam visíveis no histórico.
func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

// GetBusinessHours devolve (nil, nil) quando o expediente nunca foi configurado.
func (r *BookingGormRepository) GetBusinessHours(
	ctx context.Context,
) (*models.BusinessHours, error) {

	var h models.BusinessHours
	err := r.db.WithContext(ctx).First(&h, models.BusinessHoursID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get business hours: %w", err)
	}
	return &h, nil
}

func (r *BookingGormRepository) ListBlockedIntervals(
	ctx context.Context,
	barberID uint,
	day time.Time,
) ([]models.BlockedInterval, error) {

	date := day.Format(timezone.DateLayout)

	var rows []models.BlockedInterval
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Where(
			r.db.Where("scope = ?", models.BlockScopeGlobal).
				Or("scope = ? AND date = ?", models.BlockScopeDate, date).
				Or("scope = ? AND range_start <= ? AND range_end >= ?", models.BlockScopeRecurring, date, date),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list blocked intervals: %w", err)
	}

	// dia da semana é resolvido aqui, não no SQL
	out := rows[:0]
	for _, b := range rows {
		if domain.BlockAppliesOn(b, day) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "barber_id", "starts_at", "ends_at", "status").
		Where(
			"barber_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			barberID, string(domain.StatusCanceled), to.UTC(), from.UTC(),
		).
		Order("starts_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	return rows, nil
}

// --------------------------------------------------
// Booking (create / state change)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	customer domain.CustomerInput,
) error {

	b.StartsAt = b.StartsAt.UTC()
	b.EndsAt = b.EndsAt.UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBarber(tx, b.BarberID); err != nil {
			return err
		}

		var clashing []uint
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
				b.BarberID, string(domain.StatusCanceled), b.EndsAt, b.StartsAt,
			).
			Pluck("id", &clashing).Error; err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if len(clashing) > 0 {
			return httperr.ErrConflict(domain.CodeSlotUnavailable)
		}

		c, err := upsertCustomer(tx, customer)
		if err != nil {
			return err
		}
		b.CustomerID = &c.ID

		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrConflict(domain.CodeSlotUnavailable)
			}
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
}

// lockBarber serializa criações na agenda do barbeiro até o fim da transação.
// SQLite já serializa escritas, só o Postgres precisa do lock explícito.
func lockBarber(tx *gorm.DB, barberID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(barberID)).Error; err != nil {
		return fmt.Errorf("lock barber schedule: %w", err)
	}
	return nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service", unscoped).
		Preload("Barber", unscoped).
		First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
	at time.Time,
) error {

	at = at.UTC()
	updates := map[string]any{
		"status":     string(to),
		"updated_at": at,
	}
	switch to {
	case domain.StatusConfirmed:
		updates["confirmed_at"] = at
	case domain.StatusCanceled:
		updates["canceled_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update booking status: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// ninguém foi atualizado: sumiu ou outro request mudou o status antes
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return httperr.ErrConflict(domain.CodeInvalidState)
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *BookingGormRepository) UpsertCustomer(
	ctx context.Context,
	in domain.CustomerInput,
) (*models.Customer, error) {

	var c *models.Customer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		c, err = upsertCustomer(tx, in)
		return err
	})
	return c, err
}

func upsertCustomer(tx *gorm.DB, in domain.CustomerInput) (*models.Customer, error) {
	var c models.Customer
	err := tx.Where("phone = ?", in.Phone).First(&c).Error

	if err == nil {
		updates := map[string]any{}
		if in.Name != "" && in.Name != c.Name {
			updates["name"] = in.Name
		}
		if in.Email != "" && in.Email != c.Email {
			updates["email"] = in.Email
		}
		if len(updates) > 0 {
			if err := tx.Model(&c).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("update customer: %w", err)
			}
		}
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	c = models.Customer{
		Name:  in.Name,
		Phone: in.Phone,
		Email: in.Email,
	}
	if err := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoNothing: true,
		}).
		Create(&c).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	// outro request criou o mesmo telefone no meio do caminho
	if c.ID == 0 {
		if err := tx.Where("phone = ?", in.Phone).First(&c).Error; err != nil {
			return nil, fmt.Errorf("reload customer: %w", err)
		}
	}
	return &c, nil
}

// FindCustomerByPhone devolve (nil, nil) quando o telefone não existe.
func (r *BookingGormRepository) FindCustomerByPhone(
	ctx context.Context,
	phone string,
) (*models.Customer, error) {

	var c models.Customer
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return &c, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	barberID *uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Service", unscoped).
		Preload("Barber", unscoped).
		Where("starts_at >= ? AND starts_at < ?", from.UTC(), to.UTC())

	if barberID != nil {
		q = q.Where("barber_id = ?", *barberID)
	}

	var rows []models.Booking
	if err := q.Order("starts_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return rows, nil
}

func (r *BookingGormRepository) ListBookingsByPhone(
	ctx context.Context,
	phone string,
	from time.Time,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service", unscoped).
		Preload("Barber", unscoped).
		Where("customer_phone = ? AND starts_at >= ?", phone, from.UTC()).
		Order("starts_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings by phone: %w", err)
	}
	return rows, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

// ListReminderDue devolve bookings ativos no intervalo que ainda não
// receberam lembrete.
func (r *BookingGormRepository) ListReminderDue(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service", unscoped).
		Preload("Barber", unscoped).
		Where(
			"status <> ? AND reminder_sent_at IS NULL AND starts_at >= ? AND starts_at < ?",
			string(domain.StatusCanceled), from.UTC(), to.UTC(),
		).
		Order("starts_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reminder due: %w", err)
	}
	return rows, nil
}

// MarkReminderSent é condicional para dois workers não duplicarem o SMS.
func (r *BookingGormRepository) MarkReminderSent(
	ctx context.Context,
	id uint,
	at time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		Update("reminder_sent_at", at.UTC())
	if res.Error != nil {
		return false, fmt.Errorf("mark reminder: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingGormRepository) SetPaymentReference(
	ctx context.Context,
	id uint,
	reference string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("payment_reference", reference).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
