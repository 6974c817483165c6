package memstore

import (
	"sync"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
)

// Recorder guarda os eventos de auditoria despachados.
type Recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *Recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}
