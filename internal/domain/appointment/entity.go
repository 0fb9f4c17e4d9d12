package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Complete marks a scheduled appointment as completed at now.
func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// End returns the instant the appointment's service finishes.
func End(ap models.Appointment) time.Time {
	return ap.Date.Add(time.Duration(DurationOf(ap.Service)) * time.Minute)
}
