package booking

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCanceled)
	b.CanceledAt = &now
	return nil
}

// CheckCustomerCancel aplica a política de cancelamento pelo cliente: mesmo
// telefone da criação, status cancelável e antecedência mínima.
func CheckCustomerCancel(
	b *models.Booking,
	phone string,
	now time.Time,
	minNotice time.Duration,
) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	if normalized != b.CustomerPhone {
		return httperr.ErrPolicy(CodeNotOwner)
	}
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}
	if b.StartsAt.Sub(now) < minNotice {
		return httperr.ErrPolicy(CodeCancelWindowClosed)
	}
	return nil
}
