package booking

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// AvailabilityInput reúne tudo que o cálculo de horários precisa. Nada aqui
// acessa banco: a mesma entrada sempre produz a mesma saída.
type AvailabilityInput struct {
	Day      time.Time // qualquer instante do dia, no fuso da barbearia
	Hours    *WorkHours
	Duration time.Duration
	Step     time.Duration
	Blocked  []Interval
	Busy     []Interval
}

func (in AvailabilityInput) validate() error {
	if in.Duration <= 0 {
		return httperr.ErrValidation(CodeInvalidDuration)
	}
	if in.Step <= 0 {
		return httperr.ErrValidation(CodeInvalidStep)
	}
	return nil
}

func (in AvailabilityInput) lunch(day time.Time) (Interval, bool) {
	if in.Hours == nil || !in.Hours.HasLunch {
		return Interval{}, false
	}
	return Interval{
		Start: in.Hours.LunchStart.On(day),
		End:   in.Hours.LunchEnd.On(day),
	}, true
}

// AvailableSlots gera candidatos a cada Step, de Open até Close, e descarta
// os que, ocupados por Duration, cruzam almoço, bloqueios ou bookings.
// Sem expediente configurado não há horários.
func AvailableSlots(in AvailabilityInput) ([]time.Time, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	slots := []time.Time{}
	if in.Hours == nil {
		return slots, nil
	}

	day := timezone.StartOfDay(in.Day)
	open := in.Hours.Open.On(day)
	closing := in.Hours.Close.On(day)

	excluded := make([]Interval, 0, len(in.Blocked)+len(in.Busy)+1)
	if l, ok := in.lunch(day); ok {
		excluded = append(excluded, l)
	}
	excluded = append(excluded, in.Blocked...)
	excluded = append(excluded, in.Busy...)

	for cur := open; !cur.Add(in.Duration).After(closing); cur = cur.Add(in.Step) {
		occupied := Interval{Start: cur, End: cur.Add(in.Duration)}
		if overlapsAny(occupied, excluded) {
			continue
		}
		slots = append(slots, cur)
	}

	return slots, nil
}

// CheckSlot valida um início escolhido contra as mesmas regras de
// AvailableSlots, devolvendo o motivo da recusa.
func CheckSlot(in AvailabilityInput, start time.Time) error {
	if err := in.validate(); err != nil {
		return err
	}
	if in.Hours == nil {
		return httperr.ErrNotFound(CodeHoursNotConfigured)
	}

	day := timezone.StartOfDay(start.In(in.Day.Location()))
	occupied := Interval{Start: start, End: start.Add(in.Duration)}

	if occupied.Start.Before(in.Hours.Open.On(day)) || occupied.End.After(in.Hours.Close.On(day)) {
		return httperr.ErrValidation(CodeOutsideHours)
	}
	if l, ok := in.lunch(day); ok && occupied.Overlaps(l) {
		return httperr.ErrValidation(CodeOutsideHours)
	}
	if overlapsAny(occupied, in.Blocked) {
		return httperr.ErrValidation(CodeSlotBlocked)
	}
	if overlapsAny(occupied, in.Busy) {
		return httperr.ErrConflict(CodeSlotUnavailable)
	}
	return nil
}

// CheckGrid exige que start caia na grade de Step contada a partir da
// abertura, ou seja, um dos horários que AvailableSlots oferece.
func CheckGrid(hours WorkHours, start time.Time, step time.Duration) error {
	if step <= 0 {
		return httperr.ErrValidation(CodeInvalidStep)
	}
	open := hours.Open.On(timezone.StartOfDay(start))
	if start.Sub(open)%step != 0 {
		return httperr.ErrValidation(CodeSlotOffGrid)
	}
	return nil
}

func overlapsAny(iv Interval, set []Interval) bool {
	for _, other := range set {
		if iv.Overlaps(other) {
			return true
		}
	}
	return false
}
