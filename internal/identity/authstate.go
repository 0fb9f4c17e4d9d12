package identity

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/barber-booking/internal/feed"
)

// authHub streams the auth state of sessions to in-process watchers.
type authHub struct {
	mu       sync.Mutex
	watchers map[string]map[chan *Principal]struct{}
}

func newAuthHub() *authHub {
	return &authHub{watchers: make(map[string]map[chan *Principal]struct{})}
}

// watch emits current right away and nil once the session is signed out.
// The channel closes when ctx ends.
func (h *authHub) watch(ctx context.Context, sessionID string, current *Principal) <-chan *Principal {
	ch := make(chan *Principal, 1)
	ch <- current

	h.mu.Lock()
	set, ok := h.watchers[sessionID]
	if !ok {
		set = make(map[chan *Principal]struct{})
		h.watchers[sessionID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.watchers[sessionID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.watchers, sessionID)
			}
		}
	}()

	return ch
}

func (h *authHub) signedOut(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.watchers[sessionID] {
		feed.Offer(ch, nil)
	}
}
