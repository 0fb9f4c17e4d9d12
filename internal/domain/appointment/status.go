package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// Status is the stored lifecycle state of an appointment. The values are the
// ones persisted by earlier releases and must not change.
type Status string

const (
	StatusScheduled Status = "agendada"
	StatusCompleted Status = "completada"
	StatusCancelled Status = "cancelada"
)

// InitialStatus is the state every new booking starts in.
func InitialStatus() Status {
	return StatusScheduled
}

// Open reports whether the appointment can still change. Completed and
// cancelled appointments are final.
func (s Status) Open() bool {
	return s == StatusScheduled
}

// CanCancel returns invalid_state unless the appointment is still scheduled.
func CanCancel(current Status) error {
	return requireOpen(current)
}

// CanComplete returns invalid_state unless the appointment is still scheduled.
func CanComplete(current Status) error {
	return requireOpen(current)
}

// CanEdit returns invalid_state for completed or cancelled appointments.
func CanEdit(current Status) error {
	return requireOpen(current)
}

func requireOpen(s Status) error {
	if !s.Open() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
