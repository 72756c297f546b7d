package booking

import (
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// WorkHours é a versão validada de models.BusinessHours.
type WorkHours struct {
	Open       Clock
	Close      Clock
	LunchStart Clock
	LunchEnd   Clock
	HasLunch   bool
}

// WorkHoursFrom converte e valida o expediente. Sem configuração não existe
// expediente: quem chama deve falhar fechado.
func WorkHoursFrom(m *models.BusinessHours) (WorkHours, error) {
	if m == nil {
		return WorkHours{}, httperr.ErrNotFound(CodeHoursNotConfigured)
	}

	var h WorkHours
	var err error

	if h.Open, err = ParseClock(m.OpenTime); err != nil {
		return WorkHours{}, httperr.ErrValidation(CodeInvalidHours)
	}
	if h.Close, err = ParseClock(m.CloseTime); err != nil {
		return WorkHours{}, httperr.ErrValidation(CodeInvalidHours)
	}

	switch {
	case m.LunchStart == "" && m.LunchEnd == "":
	case m.LunchStart == "" || m.LunchEnd == "":
		return WorkHours{}, httperr.ErrValidation(CodeInvalidHours)
	default:
		if h.LunchStart, err = ParseClock(m.LunchStart); err != nil {
			return WorkHours{}, httperr.ErrValidation(CodeInvalidHours)
		}
		if h.LunchEnd, err = ParseClock(m.LunchEnd); err != nil {
			return WorkHours{}, httperr.ErrValidation(CodeInvalidHours)
		}
		h.HasLunch = true
	}

	if err := h.Validate(); err != nil {
		return WorkHours{}, err
	}
	return h, nil
}

func (h WorkHours) Validate() error {
	if h.Open >= h.Close {
		return httperr.ErrValidation(CodeInvalidHours)
	}
	if h.HasLunch {
		if h.LunchStart >= h.LunchEnd {
			return httperr.ErrValidation(CodeInvalidHours)
		}
		if h.LunchStart < h.Open || h.LunchEnd > h.Close {
			return httperr.ErrValidation(CodeInvalidHours)
		}
	}
	return nil
}
