package schedule

import (
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// canManage reports whether actor may edit barberID's overrides: a barber
// their own, a super admin anyone's.
func canManage(actor domain.Principal, barberID string) error {
	switch actor.Role {
	case domain.RoleSuperAdmin:
		return nil
	case domain.RoleAdmin:
		if actor.ID == barberID {
			return nil
		}
		return httperr.ErrForbidden("other_barber")
	}
	return httperr.ErrForbidden("role_not_allowed")
}
