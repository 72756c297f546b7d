package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func mustHours(t *testing.T, open, close, lunchStart, lunchEnd string) *WorkHours {
	t.Helper()
	h, err := WorkHoursFrom(&models.BusinessHours{
		OpenTime:   open,
		CloseTime:  close,
		LunchStart: lunchStart,
		LunchEnd:   lunchEnd,
	})
	if err != nil {
		t.Fatalf("WorkHoursFrom: %v", err)
	}
	return &h
}

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func containsSlot(slots []time.Time, want time.Time) bool {
	for _, s := range slots {
		if s.Equal(want) {
			return true
		}
	}
	return false
}

func TestAvailableSlots_FullDayWithoutLunch(t *testing.T) {
	slots, err := AvailableSlots(AvailabilityInput{
		Day:      testDay,
		Hours:    mustHours(t, "09:00", "18:00", "", ""),
		Duration: 30 * time.Minute,
		Step:     30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	if len(slots) != 18 {
		t.Fatalf("got %d slots, want 18", len(slots))
	}
	if !slots[0].Equal(at(9, 0)) {
		t.Fatalf("first slot = %v, want 09:00", slots[0])
	}
	if !slots[len(slots)-1].Equal(at(17, 30)) {
		t.Fatalf("last slot = %v, want 17:30", slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].After(slots[i-1]) {
			t.Fatalf("slots not strictly ascending at %d", i)
		}
	}
}

func TestAvailableSlots_LunchIsHalfOpen(t *testing.T) {
	slots, err := AvailableSlots(AvailabilityInput{
		Day:      testDay,
		Hours:    mustHours(t, "09:00", "18:00", "12:00", "13:00"),
		Duration: 30 * time.Minute,
		Step:     30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	tests := []struct {
		name string
		slot time.Time
		want bool
	}{
		{"ends exactly at lunch start", at(11, 30), true},
		{"starts at lunch start", at(12, 0), false},
		{"inside lunch", at(12, 30), false},
		{"starts exactly at lunch end", at(13, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsSlot(slots, tt.slot); got != tt.want {
				t.Fatalf("slot %s present = %v, want %v", tt.slot.Format("15:04"), got, tt.want)
			}
		})
	}
	if len(slots) != 16 {
		t.Fatalf("got %d slots, want 16", len(slots))
	}
}

func TestAvailableSlots_ExistingBookingBlocksOverlap(t *testing.T) {
	busy := BusyIntervals([]models.Booking{
		{StartsAt: at(10, 0), EndsAt: at(10, 45), Status: string(StatusConfirmed)},
		{StartsAt: at(14, 0), EndsAt: at(15, 0), Status: string(StatusCanceled)},
	})

	slots, err := AvailableSlots(AvailabilityInput{
		Day:      testDay,
		Hours:    mustHours(t, "09:00", "18:00", "", ""),
		Duration: 30 * time.Minute,
		Step:     15 * time.Minute,
		Busy:     busy,
	})
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	if !containsSlot(slots, at(9, 30)) {
		t.Fatalf("09:30 ends at 10:00 and must be available")
	}
	if containsSlot(slots, at(9, 45)) {
		t.Fatalf("09:45 overlaps the 10:00 booking")
	}
	if containsSlot(slots, at(10, 30)) {
		t.Fatalf("10:30 overlaps the booking until 10:45")
	}
	if !containsSlot(slots, at(10, 45)) {
		t.Fatalf("10:45 starts when the booking ends")
	}
	if !containsSlot(slots, at(14, 0)) {
		t.Fatalf("canceled bookings must free their slot")
	}
}

func TestAvailableSlots_LongServiceMustFitBeforeClose(t *testing.T) {
	slots, err := AvailableSlots(AvailabilityInput{
		Day:      testDay,
		Hours:    mustHours(t, "09:00", "18:00", "", ""),
		Duration: 90 * time.Minute,
		Step:     30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	last := slots[len(slots)-1]
	if !last.Equal(at(16, 30)) {
		t.Fatalf("last slot = %s, want 16:30", last.Format("15:04"))
	}
}

func TestAvailableSlots_Blocked(t *testing.T) {
	blocks, err := BlockIntervals([]models.BlockedInterval{
		{BarberID: 1, Scope: models.BlockScopeDate, Date: "2026-03-10", StartTime: "15:00", EndTime: "16:00"},
		{BarberID: 1, Scope: models.BlockScopeDate, Date: "2026-03-11", StartTime: "09:00", EndTime: "18:00"},
	}, testDay)
	if err != nil {
		t.Fatalf("BlockIntervals: %v", err)
	}

	slots, err := AvailableSlots(AvailabilityInput{
		Day:      testDay,
		Hours:    mustHours(t, "09:00", "18:00", "", ""),
		Duration: 30 * time.Minute,
		Step:     30 * time.Minute,
		Blocked:  blocks,
	})
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if containsSlot(slots, at(15, 0)) || containsSlot(slots, at(15, 30)) {
		t.Fatalf("blocked window must not produce slots")
	}
	if !containsSlot(slots, at(14, 30)) || !containsSlot(slots, at(16, 0)) {
		t.Fatalf("slots around the block must stay available")
	}
	if len(slots) != 16 {
		t.Fatalf("got %d slots, want 16", len(slots))
	}
}

func TestAvailableSlots_NoHoursFailsClosed(t *testing.T) {
	slots, err := AvailableSlots(AvailabilityInput{
		Day:      testDay,
		Duration: 30 * time.Minute,
		Step:     30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots without business hours, got %d", len(slots))
	}
}

func TestAvailableSlots_InvalidInput(t *testing.T) {
	hours := mustHours(t, "09:00", "18:00", "", "")

	_, err := AvailableSlots(AvailabilityInput{Day: testDay, Hours: hours, Step: time.Minute})
	if !httperr.IsBusiness(err, CodeInvalidDuration) {
		t.Fatalf("expected invalid_duration, got %v", err)
	}

	_, err = AvailableSlots(AvailabilityInput{Day: testDay, Hours: hours, Duration: time.Minute})
	if !httperr.IsBusiness(err, CodeInvalidStep) {
		t.Fatalf("expected invalid_step, got %v", err)
	}
}

func TestAvailableSlots_Deterministic(t *testing.T) {
	in := AvailabilityInput{
		Day:      testDay,
		Hours:    mustHours(t, "08:00", "12:00", "", ""),
		Duration: 45 * time.Minute,
		Step:     15 * time.Minute,
		Busy:     []Interval{{Start: at(9, 0), End: at(9, 30)}},
	}
	a, _ := AvailableSlots(in)
	b, _ := AvailableSlots(in)
	if len(a) != len(b) {
		t.Fatalf("same input produced different lengths")
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("same input produced different slot at %d", i)
		}
	}
}

func TestCheckSlot(t *testing.T) {
	in := AvailabilityInput{
		Day:      testDay,
		Hours:    mustHours(t, "09:00", "18:00", "12:00", "13:00"),
		Duration: 30 * time.Minute,
		Step:     30 * time.Minute,
		Blocked:  []Interval{{Start: at(15, 0), End: at(16, 0)}},
		Busy:     []Interval{{Start: at(10, 0), End: at(10, 45)}},
	}

	tests := []struct {
		name  string
		start time.Time
		code  string
	}{
		{"free", at(9, 0), ""},
		{"before open", at(8, 30), CodeOutsideHours},
		{"past close", at(17, 45), CodeOutsideHours},
		{"lunch", at(12, 15), CodeOutsideHours},
		{"ends at lunch start", at(11, 30), ""},
		{"blocked", at(15, 30), CodeSlotBlocked},
		{"busy", at(10, 30), CodeSlotUnavailable},
		{"right after busy", at(10, 45), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlot(in, tt.start)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("got %v, want %s", err, tt.code)
			}
		})
	}

	in.Hours = nil
	if err := CheckSlot(in, at(9, 0)); !httperr.IsBusiness(err, CodeHoursNotConfigured) {
		t.Fatalf("missing hours must fail closed, got %v", err)
	}
}

func TestCheckGrid(t *testing.T) {
	hours := mustHours(t, "09:00", "18:00", "", "")

	tests := []struct {
		name  string
		start time.Time
		step  time.Duration
		code  string
	}{
		{"opening", at(9, 0), 30 * time.Minute, ""},
		{"on step", at(13, 30), 30 * time.Minute, ""},
		{"ten past", at(9, 10), 30 * time.Minute, CodeSlotOffGrid},
		{"quarter step", at(9, 45), 15 * time.Minute, ""},
		{"before open off grid", at(8, 50), 30 * time.Minute, CodeSlotOffGrid},
		{"zero step", at(9, 0), 0, CodeInvalidStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckGrid(*hours, tt.start, tt.step)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestAvailableSlots_ExactFitBoundaries(t *testing.T) {
	hours := mustHours(t, "09:00", "18:00", "", "")
	block := []Interval{{Start: at(15, 0), End: at(16, 0)}}

	tests := []struct {
		name     string
		duration time.Duration
		blocked  []Interval
		start    time.Time
		offered  bool
		code     string
	}{
		{"ends exactly at close", 60 * time.Minute, nil, at(17, 0), true, ""},
		{"one minute past close", 61 * time.Minute, nil, at(17, 0), false, CodeOutsideHours},
		{"ends exactly at block start", 60 * time.Minute, block, at(14, 0), true, ""},
		{"one minute into block", 61 * time.Minute, block, at(14, 0), false, CodeSlotBlocked},
		{"starts exactly at block end", 60 * time.Minute, block, at(16, 0), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := AvailabilityInput{
				Day:      testDay,
				Hours:    hours,
				Duration: tt.duration,
				Step:     30 * time.Minute,
				Blocked:  tt.blocked,
			}

			slots, err := AvailableSlots(in)
			if err != nil {
				t.Fatalf("AvailableSlots: %v", err)
			}
			if got := containsSlot(slots, tt.start); got != tt.offered {
				t.Fatalf("%s offered = %v, want %v", tt.start.Format("15:04"), got, tt.offered)
			}

			err = CheckSlot(in, tt.start)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("CheckSlot: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("CheckSlot = %v, want %s", err, tt.code)
			}
		})
	}
}
