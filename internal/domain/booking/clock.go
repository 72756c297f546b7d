package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Clock é um horário de parede em minutos desde 00:00.
type Clock int

func ParseClock(hm string) (Clock, error) {
	if len(hm) != len(timezone.ClockLayout) {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	t, err := time.Parse(timezone.ClockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", hm, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// On posiciona o horário no dia de `day`, no fuso de `day`.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		int(c)/60, int(c)%60, 0, 0,
		day.Location(),
	)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
