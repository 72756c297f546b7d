package booking

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return Status(s), nil
	}
	return "", httperr.ErrValidation(CodeInvalidStatus)
}

// ===============================
// Transitions
// ===============================

// CanConfirm: só pending vira confirmed.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrConflict(CodeInvalidState)
	}
	return nil
}

// CanCancel: pending e confirmed podem ser cancelados; canceled é terminal.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrConflict(CodeInvalidState)
	}
	return nil
}

// InitialStatus decide o status de criação. Cliente sempre cria pending;
// admin/barbeiro escolhem entre pending e confirmed.
func InitialStatus(actor Actor, requested Status) (Status, error) {
	if !actor.Privileged() {
		return StatusPending, nil
	}
	switch requested {
	case "":
		return StatusPending, nil
	case StatusPending, StatusConfirmed:
		return requested, nil
	default:
		return "", httperr.ErrValidation(CodeInvalidStatus)
	}
}
