package booking

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Interval é semiaberto: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// BusyIntervals devolve o tempo ocupado pelos bookings; cancelados liberam o horário.
func BusyIntervals(bookings []models.Booking) []Interval {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if Status(b.Status) == StatusCanceled {
			continue
		}
		out = append(out, Interval{Start: b.StartsAt, End: b.EndsAt})
	}
	return out
}
