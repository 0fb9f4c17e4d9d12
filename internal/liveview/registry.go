package liveview

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Registry finds running views by id so their filters can be changed from
// another request.
type Registry struct {
	mu    sync.RWMutex
	views map[string]*View
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]*View)}
}

func (r *Registry) Open(
	ctx context.Context,
	source <-chan []models.Appointment,
	p appointment.Principal,
	initial appointment.Filters,
) *View {
	v := Start(ctx, source, p, initial)

	r.mu.Lock()
	r.views[v.ID()] = v
	r.mu.Unlock()

	go func() {
		<-v.Done()
		r.mu.Lock()
		delete(r.views, v.ID())
		r.mu.Unlock()
	}()

	return v
}

// Lookup returns the view only to the principal that opened it.
func (r *Registry) Lookup(id, principalID string) (*View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.views[id]
	if !ok || v.principal.ID != principalID {
		return nil, false
	}
	return v, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}
