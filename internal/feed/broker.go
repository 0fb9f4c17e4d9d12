package feed

import (
	"context"
	"sync"
)

// Publisher announces that a collection changed.
type Publisher interface {
	Publish(ctx context.Context, collection string)
}

// Broker fans change signals out to in-process subscribers. Signals carry no
// payload and coalesce: a slow subscriber sees at most one pending signal,
// which is enough to trigger a fresh read.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan struct{}]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe returns a signal channel for collection and a cancel func that
// must be called to release it.
func (b *Broker) Subscribe(collection string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	set, ok := b.subs[collection]
	if !ok {
		set = make(map[chan struct{}]struct{})
		b.subs[collection] = set
	}
	set[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[collection], ch)
			if len(b.subs[collection]) == 0 {
				delete(b.subs, collection)
			}
			b.mu.Unlock()
		})
	}
}

func (b *Broker) Publish(_ context.Context, collection string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[collection] {
		signal(ch)
	}
}

// PublishAll wakes every subscriber, e.g. after notifications may have been
// missed.
func (b *Broker) PublishAll() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, set := range b.subs {
		for ch := range set {
			signal(ch)
		}
	}
}

func (b *Broker) subscribers(collection string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[collection])
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Offer delivers v on a buffered channel owned by a single sender, replacing
// any value the reader has not taken yet.
func Offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
