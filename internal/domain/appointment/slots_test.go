package appointment

import (
	"slices"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func bookedAt(hour, minute int, service string) models.Appointment {
	return models.Appointment{
		Date:    day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute),
		Service: service,
	}
}

func TestGenerateSlots_FullDay(t *testing.T) {
	slots := GenerateSlots(Window{StartMin: 540, EndMin: 1020}, nil, 60, 15, nil)

	if len(slots) != 29 {
		t.Fatalf("len(slots) = %d, want 29", len(slots))
	}
	if slots[0] != "09:00" {
		t.Fatalf("first slot = %q, want 09:00", slots[0])
	}
	if slots[len(slots)-1] != "16:00" {
		t.Fatalf("last slot = %q, want 16:00", slots[len(slots)-1])
	}
}

func TestGenerateSlots_BookedAppointment(t *testing.T) {
	booked := []models.Appointment{bookedAt(10, 0, "corte-hombre")}
	slots := GenerateSlots(Window{StartMin: 540, EndMin: 1020}, nil, 60, 15, booked)

	if slices.Contains(slots, "10:00") {
		t.Fatalf("10:00 must be excluded: %v", slots)
	}
	for _, s := range []string{"09:00", "11:00"} {
		if !slices.Contains(slots, s) {
			t.Fatalf("%s must be offered (touching boundary): %v", s, slots)
		}
	}
	for _, s := range []string{"09:15", "09:45", "10:45"} {
		if slices.Contains(slots, s) {
			t.Fatalf("%s overlaps the booking: %v", s, slots)
		}
	}
}

func TestGenerateSlots_Break(t *testing.T) {
	brk := &Break{StartMin: 780, EndMin: 840}
	slots := GenerateSlots(Window{StartMin: 540, EndMin: 1020}, brk, 60, 15, nil)

	if slices.Contains(slots, "12:30") {
		t.Fatalf("12:30 overlaps the break: %v", slots)
	}
	if !slices.Contains(slots, "14:00") {
		t.Fatalf("14:00 starts at break end and must be offered: %v", slots)
	}
	if !slices.Contains(slots, "12:00") {
		t.Fatalf("12:00 ends at break start and must be offered: %v", slots)
	}
}

func TestGenerateSlots_ServiceDoesNotFit(t *testing.T) {
	slots := GenerateSlots(Window{StartMin: 540, EndMin: 570}, nil, 60, 15, nil)
	if slots == nil || len(slots) != 0 {
		t.Fatalf("slots = %#v, want empty non-nil", slots)
	}
}

func TestGenerateSlots_UnknownServiceBlocksThirtyMinutes(t *testing.T) {
	booked := []models.Appointment{bookedAt(9, 0, "mystery")}
	slots := GenerateSlots(Window{StartMin: 540, EndMin: 660}, nil, 30, 15, booked)

	want := []string{"09:30", "09:45", "10:00", "10:15", "10:30"}
	if !slices.Equal(slots, want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
}

func TestGenerateSlots_NonPositiveStepUsesDefault(t *testing.T) {
	slots := GenerateSlots(Window{StartMin: 540, EndMin: 600}, nil, 30, 0, nil)
	want := []string{"09:00", "09:15", "09:30"}
	if !slices.Equal(slots, want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
}

func TestSlots_StopsEarly(t *testing.T) {
	var got []string
	for s := range Slots(Window{StartMin: 540, EndMin: 1020}, nil, 60, 15, nil) {
		got = append(got, s)
		if len(got) == 3 {
			break
		}
	}
	if !slices.Equal(got, []string{"09:00", "09:15", "09:30"}) {
		t.Fatalf("got %v", got)
	}
}

// Offered slots never conflict, never touch the break, and ascend.
func TestGenerateSlots_Properties(t *testing.T) {
	booked := []models.Appointment{
		bookedAt(9, 30, "corte-hombre"),
		bookedAt(11, 45, "Afeitado"),
		bookedAt(15, 10, "mystery"),
	}
	brk := &Break{StartMin: 780, EndMin: 840}

	for _, duration := range []int{15, 30, 45, 60, 90} {
		for _, step := range []int{5, 10, 15, 30} {
			slots := GenerateSlots(Window{StartMin: 480, EndMin: 1200}, brk, duration, step, booked)

			prev := -1
			for _, s := range slots {
				start := TimeToMinutes(s)
				end := start + duration
				if IsConflicting(booked, start, end) {
					t.Fatalf("duration=%d step=%d: slot %s conflicts", duration, step, s)
				}
				if overlaps(start, end, brk.StartMin, brk.EndMin) {
					t.Fatalf("duration=%d step=%d: slot %s overlaps break", duration, step, s)
				}
				if start <= prev {
					t.Fatalf("duration=%d step=%d: slot %s out of order", duration, step, s)
				}
				if end > 1200 {
					t.Fatalf("duration=%d step=%d: slot %s runs past the window", duration, step, s)
				}
				prev = start
			}
		}
	}
}

func TestIsConflicting_HalfOpen(t *testing.T) {
	booked := []models.Appointment{bookedAt(10, 0, "corte-hombre")}

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"ends at booking start", 540, 600, false},
		{"starts at booking end", 660, 720, false},
		{"inside", 615, 630, true},
		{"covers", 570, 690, true},
		{"overlaps start", 570, 601, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConflicting(booked, tt.start, tt.end); got != tt.want {
				t.Fatalf("IsConflicting(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
