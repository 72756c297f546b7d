package booking

import (
	"slices"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ValidateBlockedInterval checa o bloqueio antes de gravar.
func ValidateBlockedInterval(b *models.BlockedInterval) error {
	start, err := ParseClock(b.StartTime)
	if err != nil {
		return httperr.ErrValidation(CodeInvalidBlock)
	}
	end, err := ParseClock(b.EndTime)
	if err != nil || start >= end {
		return httperr.ErrValidation(CodeInvalidBlock)
	}
	if b.BarberID == 0 {
		return httperr.ErrValidation(CodeInvalidBlock)
	}

	switch b.Scope {
	case models.BlockScopeDate:
		if _, err := time.Parse(timezone.DateLayout, b.Date); err != nil {
			return httperr.ErrValidation(CodeInvalidBlock)
		}
	case models.BlockScopeGlobal:
	case models.BlockScopeRecurring:
		from, err := time.Parse(timezone.DateLayout, b.RangeStart)
		if err != nil {
			return httperr.ErrValidation(CodeInvalidBlock)
		}
		to, err := time.Parse(timezone.DateLayout, b.RangeEnd)
		if err != nil || to.Before(from) {
			return httperr.ErrValidation(CodeInvalidBlock)
		}
		for _, wd := range b.Weekdays {
			if wd < 0 || wd > 6 {
				return httperr.ErrValidation(CodeInvalidBlock)
			}
		}
	default:
		return httperr.ErrValidation(CodeInvalidBlock)
	}
	return nil
}

// BlockAppliesOn avalia a regra do bloqueio para um dia (no fuso da barbearia).
func BlockAppliesOn(b models.BlockedInterval, day time.Time) bool {
	date := day.Format(timezone.DateLayout)

	switch b.Scope {
	case models.BlockScopeGlobal:
		return true
	case models.BlockScopeDate:
		return b.Date == date
	case models.BlockScopeRecurring:
		// YYYY-MM-DD compara lexicograficamente
		if date < b.RangeStart || date > b.RangeEnd {
			return false
		}
		if len(b.Weekdays) == 0 {
			return true
		}
		return slices.Contains([]int(b.Weekdays), int(day.Weekday()))
	default:
		return false
	}
}

// BlockIntervals materializa os bloqueios aplicáveis ao dia.
func BlockIntervals(blocks []models.BlockedInterval, day time.Time) ([]Interval, error) {
	out := make([]Interval, 0, len(blocks))
	for _, b := range blocks {
		if !BlockAppliesOn(b, day) {
			continue
		}
		start, err := ParseClock(b.StartTime)
		if err != nil {
			return nil, httperr.ErrValidation(CodeInvalidBlock)
		}
		end, err := ParseClock(b.EndTime)
		if err != nil {
			return nil, httperr.ErrValidation(CodeInvalidBlock)
		}
		out = append(out, Interval{Start: start.On(day), End: end.On(day)})
	}
	return out, nil
}
