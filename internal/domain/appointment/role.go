package appointment

import "strings"

type Role string

const (
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole maps a stored role tag to its canonical Role. Legacy barber
// tags read as RoleAdmin; anything else is rejected.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return RoleClient, true
	case "admin", "barber", "barbero":
		return RoleAdmin, true
	case "super_admin":
		return RoleSuperAdmin, true
	}
	return "", false
}

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Principal is a signed-in identity with its resolved application role.
type Principal struct {
	ID   string
	Role Role
	Name string
}
