package liveview

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func ap(id, clientName string, hour int) models.Appointment {
	a := models.Appointment{
		ClientID:   "c1",
		ClientName: clientName,
		Date:       time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC),
	}
	a.ID = id
	return a
}

var client = appointment.Principal{ID: "c1", Role: appointment.RoleClient}

func next(t *testing.T, v *View) []models.Appointment {
	t.Helper()
	select {
	case got, ok := <-v.Updates():
		if !ok {
			t.Fatal("view closed")
		}
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	return nil
}

func ids(aps []models.Appointment) string {
	s := ""
	for _, a := range aps {
		s += a.ID
	}
	return s
}

func TestView_WaitsForFirstSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	source := make(chan []models.Appointment)

	v := Start(ctx, source, client, appointment.Filters{})
	v.SetFilters(appointment.Filters{Search: "ana"})

	select {
	case got := <-v.Updates():
		t.Fatalf("unexpected update before any snapshot: %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestView_RebuildsOnSnapshotAndFilters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	source := make(chan []models.Appointment)

	v := Start(ctx, source, client, appointment.Filters{})

	source <- []models.Appointment{ap("b", "Juan", 11), ap("a", "Ana", 10)}
	if got := ids(next(t, v)); got != "ab" {
		t.Fatalf("got %q, want ab", got)
	}

	v.SetFilters(appointment.Filters{Search: "ana"})
	if got := ids(next(t, v)); got != "a" {
		t.Fatalf("got %q, want a", got)
	}

	// A new snapshot is combined with the latest filters, not the initial ones.
	source <- []models.Appointment{ap("c", "Mariana", 9), ap("d", "Pedro", 8)}
	if got := ids(next(t, v)); got != "c" {
		t.Fatalf("got %q, want c", got)
	}
}

func TestView_ClosesWithSource(t *testing.T) {
	source := make(chan []models.Appointment)
	v := Start(context.Background(), source, client, appointment.Filters{})
	close(source)

	select {
	case <-v.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("view did not stop")
	}
	if _, ok := <-v.Updates(); ok {
		t.Fatal("updates must be closed")
	}
}

func TestRegistry_LookupIsOwnerScoped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRegistry()

	v := r.Open(ctx, make(chan []models.Appointment), client, appointment.Filters{})

	if _, ok := r.Lookup(v.ID(), "c1"); !ok {
		t.Fatal("owner must find the view")
	}
	if _, ok := r.Lookup(v.ID(), "someone-else"); ok {
		t.Fatal("other principals must not find the view")
	}

	cancel()
	<-v.Done()

	deadline := time.Now().Add(2 * time.Second)
	for r.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("view not removed after stop")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
