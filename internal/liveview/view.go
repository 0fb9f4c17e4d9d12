package liveview

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/feed"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// View joins a live appointment feed with the current filters of one
// principal. A single goroutine owns the latest snapshot and filters and
// rebuilds the visible list whenever either changes.
type View struct {
	id        string
	principal appointment.Principal

	mu      sync.Mutex
	pending *appointment.Filters
	wake    chan struct{}

	out  chan []models.Appointment
	done chan struct{}
}

// Start runs a View until ctx ends or source closes.
func Start(
	ctx context.Context,
	source <-chan []models.Appointment,
	p appointment.Principal,
	initial appointment.Filters,
) *View {
	v := &View{
		id:        uuid.NewString(),
		principal: p,
		wake:      make(chan struct{}, 1),
		out:       make(chan []models.Appointment, 1),
		done:      make(chan struct{}),
	}
	go v.run(ctx, source, initial)
	return v
}

func (v *View) ID() string {
	return v.id
}

func (v *View) Principal() appointment.Principal {
	return v.principal
}

// Updates carries the latest visible list. It is closed when the view stops.
func (v *View) Updates() <-chan []models.Appointment {
	return v.out
}

func (v *View) Done() <-chan struct{} {
	return v.done
}

// SetFilters replaces the filters; intermediate values set before the view
// picks them up are skipped.
func (v *View) SetFilters(f appointment.Filters) {
	v.mu.Lock()
	v.pending = &f
	v.mu.Unlock()

	select {
	case v.wake <- struct{}{}:
	default:
	}
}

func (v *View) run(ctx context.Context, source <-chan []models.Appointment, filters appointment.Filters) {
	defer close(v.done)
	defer close(v.out)

	var (
		all  []models.Appointment
		have bool
	)

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-source:
			if !ok {
				return
			}
			all, have = snap, true
		case <-v.wake:
			v.mu.Lock()
			if v.pending != nil {
				filters = *v.pending
				v.pending = nil
			}
			v.mu.Unlock()
		}

		if have {
			feed.Offer(v.out, appointment.BuildVisible(all, v.principal, filters))
		}
	}
}
