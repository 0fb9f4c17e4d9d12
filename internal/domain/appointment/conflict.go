package appointment

import "github.com/BruksfildServices01/barber-booking/internal/models"

// overlaps is the half-open interval test: touching endpoints do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// IsConflicting reports whether [slotStart, slotEnd) overlaps any booked
// appointment. Booked intervals start at the wall-clock time of their date
// and last DurationOf(service) minutes.
func IsConflicting(booked []models.Appointment, slotStart, slotEnd int) bool {
	for _, ap := range booked {
		bookedStart := StartMinutes(ap.Date)
		bookedEnd := bookedStart + DurationOf(ap.Service)
		if overlaps(slotStart, slotEnd, bookedStart, bookedEnd) {
			return true
		}
	}
	return false
}
