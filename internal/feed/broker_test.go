package feed

import (
	"context"
	"testing"
)

func TestBroker_PublishSignalsSubscribers(t *testing.T) {
	b := NewBroker()
	a, cancelA := b.Subscribe("appointments")
	defer cancelA()
	u, cancelU := b.Subscribe("users")
	defer cancelU()

	b.Publish(context.Background(), "appointments")

	select {
	case <-a:
	default:
		t.Fatal("appointments subscriber not signalled")
	}
	select {
	case <-u:
		t.Fatal("users subscriber must not be signalled")
	default:
	}
}

func TestBroker_SignalsCoalesce(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe("appointments")
	defer cancel()

	for range 5 {
		b.Publish(context.Background(), "appointments")
	}

	<-ch
	select {
	case <-ch:
		t.Fatal("expected a single pending signal")
	default:
	}
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	b := NewBroker()
	_, cancel := b.Subscribe("appointments")

	cancel()
	cancel()

	if n := b.subscribers("appointments"); n != 0 {
		t.Fatalf("subscribers = %d, want 0", n)
	}
	b.Publish(context.Background(), "appointments")
}

func TestBroker_PublishAll(t *testing.T) {
	b := NewBroker()
	a, cancelA := b.Subscribe("appointments")
	defer cancelA()
	u, cancelU := b.Subscribe("users")
	defer cancelU()

	b.PublishAll()

	for _, ch := range []<-chan struct{}{a, u} {
		select {
		case <-ch:
		default:
			t.Fatal("subscriber not signalled")
		}
	}
}

func TestOffer_LatestWins(t *testing.T) {
	ch := make(chan int, 1)
	Offer(ch, 1)
	Offer(ch, 2)
	Offer(ch, 3)

	if got := <-ch; got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}
