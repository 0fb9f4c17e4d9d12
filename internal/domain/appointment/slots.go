package appointment

import (
	"iter"
	"slices"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const DefaultStep = 15

// Window is a working range in minutes since midnight.
type Window struct {
	StartMin int `json:"startMin"`
	EndMin   int `json:"endMin"`
}

// Break is a pause inside a Window.
type Break struct {
	StartMin int `json:"startMin"`
	EndMin   int `json:"endMin"`
}

// Slots yields the bookable start times of a service inside window, in
// ascending order. Candidates step by stepMin (DefaultStep when not positive)
// from window.StartMin to window.EndMin-durationMin inclusive; a candidate is
// dropped when it overlaps the break or any booked appointment.
func Slots(window Window, brk *Break, durationMin, stepMin int, booked []models.Appointment) iter.Seq[string] {
	if stepMin <= 0 {
		stepMin = DefaultStep
	}

	return func(yield func(string) bool) {
		for t := window.StartMin; t <= window.EndMin-durationMin; t += stepMin {
			end := t + durationMin

			if brk != nil && overlaps(t, end, brk.StartMin, brk.EndMin) {
				continue
			}
			if IsConflicting(booked, t, end) {
				continue
			}
			if !yield(MinutesToTime(t)) {
				return
			}
		}
	}
}

// GenerateSlots collects Slots. The result is never nil.
func GenerateSlots(window Window, brk *Break, durationMin, stepMin int, booked []models.Appointment) []string {
	out := slices.Collect(Slots(window, brk, durationMin, stepMin, booked))
	if out == nil {
		return []string{}
	}
	return out
}
