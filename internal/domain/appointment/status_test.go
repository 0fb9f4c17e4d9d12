package appointment

import (
	"testing"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestStatusTransitions(t *testing.T) {
	checks := map[string]func(Status) error{
		"cancel":   CanCancel,
		"complete": CanComplete,
		"edit":     CanEdit,
	}

	tests := []struct {
		status Status
		ok     bool
	}{
		{StatusScheduled, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}

	for name, check := range checks {
		for _, tt := range tests {
			err := check(tt.status)
			if tt.ok && err != nil {
				t.Errorf("%s from %s: unexpected %v", name, tt.status, err)
			}
			if !tt.ok && !httperr.IsBusiness(err, "invalid_state") {
				t.Errorf("%s from %s: got %v, want invalid_state", name, tt.status, err)
			}
		}
	}

	if InitialStatus() != StatusScheduled || !InitialStatus().Open() {
		t.Fatalf("initial status = %s", InitialStatus())
	}
}
