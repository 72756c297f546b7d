package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/testdb"
)

type fixture struct {
	db      *gorm.DB
	repo    *BookingGormRepository
	service models.Service
	barber  models.Barber
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testdb.New(t)

	f := fixture{
		db:      db,
		repo:    NewBookingGormRepository(db),
		service: models.Service{Name: "Corte", DurationMin: 30, Price: decimal.NewFromInt(50), Active: true},
		barber:  models.Barber{Name: "João", Active: true},
	}
	if err := db.Create(&f.service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	if err := db.Create(&f.barber).Error; err != nil {
		t.Fatalf("seed barber: %v", err)
	}
	return f
}

func (f fixture) booking(start time.Time, minutes int) *models.Booking {
	return &models.Booking{
		ServiceID:     f.service.ID,
		BarberID:      f.barber.ID,
		CustomerName:  "Maria",
		CustomerPhone: "11987654321",
		StartsAt:      start,
		EndsAt:        start.Add(time.Duration(minutes) * time.Minute),
		DurationMin:   minutes,
		Price:         decimal.NewFromInt(50),
		Status:        string(domain.StatusPending),
		PaymentMethod: string(domain.PaymentCash),
		CreatedBy:     string(domain.RoleCustomer),
	}
}

var customer = domain.CustomerInput{Name: "Maria", Phone: "11987654321"}

func TestCreateBooking_RejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	if err := f.repo.CreateBooking(ctx, f.booking(start, 45), customer); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	err := f.repo.CreateBooking(ctx, f.booking(start.Add(30*time.Minute), 30), customer)
	if !httperr.IsBusiness(err, domain.CodeSlotUnavailable) {
		t.Fatalf("overlap must be slot_unavailable, got %v", err)
	}

	// termina exatamente onde o outro começa
	if err := f.repo.CreateBooking(ctx, f.booking(start.Add(-30*time.Minute), 30), customer); err != nil {
		t.Fatalf("adjacent booking: %v", err)
	}

	var count int64
	f.db.Model(&models.Booking{}).Count(&count)
	if count != 2 {
		t.Fatalf("bookings = %d, want 2", count)
	}
}

func TestCreateBooking_CanceledFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	first := f.booking(start, 30)
	if err := f.repo.CreateBooking(ctx, first, customer); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.repo.UpdateBookingStatus(ctx, first.ID, domain.StatusPending, domain.StatusCanceled, start); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := f.repo.CreateBooking(ctx, f.booking(start, 30), customer); err != nil {
		t.Fatalf("slot of a canceled booking must be free: %v", err)
	}
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.repo.CreateBooking(context.Background(), f.booking(start, 30), customer)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, domain.CodeSlotUnavailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != 1 {
		t.Fatalf("ok=%d conflicts=%d, want 1 and 1", ok, conflicts)
	}
}

func TestCreateBooking_UpsertsCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if err := f.repo.CreateBooking(ctx, f.booking(start, 30), customer); err != nil {
		t.Fatalf("create: %v", err)
	}
	renamed := domain.CustomerInput{Name: "Maria Souza", Phone: customer.Phone, Email: "maria@example.com"}
	b := f.booking(start.Add(time.Hour), 30)
	if err := f.repo.CreateBooking(ctx, b, renamed); err != nil {
		t.Fatalf("create: %v", err)
	}

	var customers []models.Customer
	f.db.Find(&customers)
	if len(customers) != 1 {
		t.Fatalf("customers = %d, want 1", len(customers))
	}
	if customers[0].Name != "Maria Souza" || customers[0].Email != "maria@example.com" {
		t.Fatalf("customer not updated: %+v", customers[0])
	}
	if b.CustomerID == nil || *b.CustomerID != customers[0].ID {
		t.Fatalf("booking not linked to customer")
	}

	found, err := f.repo.FindCustomerByPhone(ctx, customer.Phone)
	if err != nil || found == nil {
		t.Fatalf("FindCustomerByPhone = %v, %v", found, err)
	}
	missing, err := f.repo.FindCustomerByPhone(ctx, "11900000000")
	if err != nil || missing != nil {
		t.Fatalf("absent phone must be (nil, nil), got %v, %v", missing, err)
	}
}

func TestUpdateBookingStatus_Conditional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	b := f.booking(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 30)
	if err := f.repo.CreateBooking(ctx, b, customer); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.repo.UpdateBookingStatus(ctx, b.ID, domain.StatusPending, domain.StatusConfirmed, now); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	err := f.repo.UpdateBookingStatus(ctx, b.ID, domain.StatusPending, domain.StatusConfirmed, now)
	if !httperr.IsBusiness(err, domain.CodeInvalidState) {
		t.Fatalf("stale transition must be invalid_state, got %v", err)
	}
	err = f.repo.UpdateBookingStatus(ctx, 9999, domain.StatusPending, domain.StatusConfirmed, now)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing booking must be ErrNotFound, got %v", err)
	}

	got, err := f.repo.GetBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != string(domain.StatusConfirmed) || got.ConfirmedAt == nil {
		t.Fatalf("booking = %+v", got)
	}
}

func TestGetBooking_KeepsDeletedService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.booking(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 30)
	if err := f.repo.CreateBooking(ctx, b, customer); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.db.Delete(&f.service).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	got, err := f.repo.GetBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Service.Name != "Corte" {
		t.Fatalf("historic booking lost its service: %+v", got.Service)
	}
	if _, err := f.repo.GetService(ctx, f.service.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted service must not be bookable, got %v", err)
	}
}

func TestListBlockedIntervals_ResolvesRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tuesday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	blocks := []models.BlockedInterval{
		{BarberID: f.barber.ID, Scope: models.BlockScopeGlobal, StartTime: "08:00", EndTime: "08:30"},
		{BarberID: f.barber.ID, Scope: models.BlockScopeDate, Date: "2026-03-10", StartTime: "10:00", EndTime: "11:00"},
		{BarberID: f.barber.ID, Scope: models.BlockScopeDate, Date: "2026-03-11", StartTime: "10:00", EndTime: "11:00"},
		{BarberID: f.barber.ID, Scope: models.BlockScopeRecurring, RangeStart: "2026-03-01", RangeEnd: "2026-03-31", Weekdays: []int{2}, StartTime: "15:00", EndTime: "16:00"},
		{BarberID: f.barber.ID, Scope: models.BlockScopeRecurring, RangeStart: "2026-03-01", RangeEnd: "2026-03-31", Weekdays: []int{5}, StartTime: "17:00", EndTime: "18:00"},
		{BarberID: f.barber.ID + 1, Scope: models.BlockScopeGlobal, StartTime: "12:00", EndTime: "13:00"},
	}
	if err := f.db.Create(&blocks).Error; err != nil {
		t.Fatalf("seed blocks: %v", err)
	}

	got, err := f.repo.ListBlockedIntervals(ctx, f.barber.ID, tuesday)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d blocks, want 3: %+v", len(got), got)
	}
	want := []string{"08:00", "10:00", "15:00"}
	for i, b := range got {
		if b.StartTime != want[i] {
			t.Fatalf("block %d starts %s, want %s", i, b.StartTime, want[i])
		}
	}
}

func TestListActiveBookings_SkipsCanceled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	kept := f.booking(day.Add(9*time.Hour), 30)
	dropped := f.booking(day.Add(11*time.Hour), 30)
	for _, b := range []*models.Booking{kept, dropped} {
		if err := f.repo.CreateBooking(ctx, b, customer); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := f.repo.UpdateBookingStatus(ctx, dropped.ID, domain.StatusPending, domain.StatusCanceled, day); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got, err := f.repo.ListActiveBookings(ctx, f.barber.ID, day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != kept.ID {
		t.Fatalf("got %+v, want only booking %d", got, kept.ID)
	}
}

func TestReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	b := f.booking(day.Add(9*time.Hour), 30)
	if err := f.repo.CreateBooking(ctx, b, customer); err != nil {
		t.Fatalf("create: %v", err)
	}

	due, err := f.repo.ListReminderDue(ctx, day, day.Add(24*time.Hour))
	if err != nil || len(due) != 1 {
		t.Fatalf("due = %d, %v", len(due), err)
	}

	marked, err := f.repo.MarkReminderSent(ctx, b.ID, day)
	if err != nil || !marked {
		t.Fatalf("first mark = %v, %v", marked, err)
	}
	marked, err = f.repo.MarkReminderSent(ctx, b.ID, day)
	if err != nil || marked {
		t.Fatalf("second mark must be a no-op, got %v, %v", marked, err)
	}

	due, _ = f.repo.ListReminderDue(ctx, day, day.Add(24*time.Hour))
	if len(due) != 0 {
		t.Fatalf("reminded bookings must not be due again")
	}
}
