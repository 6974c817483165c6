package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type memoryStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
	fail    bool
}

func (m *memoryStore) Save(_ context.Context, e *models.AuditLog) error {
	if m.fail {
		return errors.New("store down")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func TestDispatcherWritesEvents(t *testing.T) {
	store := &memoryStore{}
	d := NewDispatcher(store, zap.NewNop())

	id := uint(9)
	d.Dispatch(Event{
		UserID:   &id,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &id,
		Metadata: map[string]string{"horario": "14:00"},
	})
	d.Close()

	if len(store.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(store.entries))
	}
	got := store.entries[0]
	if got.Action != "appointment_created" || *got.EntityID != 9 {
		t.Errorf("unexpected entry %+v", got)
	}
	if got.Metadata != `{"horario":"14:00"}` {
		t.Errorf("unexpected metadata %s", got.Metadata)
	}
}

func TestDispatcherSurvivesStoreErrors(t *testing.T) {
	store := &memoryStore{fail: true}
	d := NewDispatcher(store, zap.NewNop())

	d.Dispatch(Event{Action: "x"})
	d.Close()

	// depois de fechado, Dispatch não entra em pânico
	d.Dispatch(Event{Action: "y"})
}
