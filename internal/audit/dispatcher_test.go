package audit

import (
	"sync"
	"testing"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/testdb"
)

func TestDispatcher_WritesOnClose(t *testing.T) {
	db := testdb.New(t)
	d := NewDispatcher(New(db))

	id := uint(7)
	d.Dispatch(Event{
		Role:     "admin",
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &id,
		Metadata: map[string]any{"from": "pending"},
	})
	d.Close()

	var logs []models.AuditLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	if logs[0].Action != "booking_confirmed" || *logs[0].EntityID != 7 {
		t.Fatalf("unexpected log: %+v", logs[0])
	}
	if string(logs[0].Metadata) != `{"from":"pending"}` {
		t.Fatalf("metadata = %s", logs[0].Metadata)
	}
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "x"})
	d.Close()
}

func TestDispatcher_LateEventsAfterCloseAreDropped(t *testing.T) {
	db := testdb.New(t)
	d := NewDispatcher(New(db))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(Event{Action: "login"})
		}()
	}
	d.Close()
	wg.Wait()

	d.Dispatch(Event{Action: "booking_created"})
	d.Close()

	var count int64
	db.Model(&models.AuditLog{}).Where("action = ?", "booking_created").Count(&count)
	if count != 0 {
		t.Fatalf("event dispatched after Close was written")
	}
}
