package appointment

import (
	"slices"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AllBarbers is the selection sentinel that disables the barber filter.
const AllBarbers = "all"

type BarberField int

const (
	ByBarberName BarberField = iota
	ByBarberID
)

type Filters struct {
	Search      string
	Barbers     []string
	BarberField BarberField
	// Date keeps appointments on the same wall-clock day, in Date's location.
	Date *time.Time
}

// Visible reports whether p's role scope includes ap.
func Visible(ap models.Appointment, p Principal) bool {
	switch p.Role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return ap.BarberID == p.ID
	case RoleClient:
		return ap.ClientID == p.ID
	}
	return false
}

// BuildVisible derives p's appointment list: role scope, then search, barber
// and date filters, then a stable ascending sort by date. It never mutates all.
func BuildVisible(all []models.Appointment, p Principal, f Filters) []models.Appointment {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	barbers := barberSet(f.Barbers)

	var dayStart, dayEnd time.Time
	if f.Date != nil {
		d := *f.Date
		dayStart = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		dayEnd = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999_999_999, d.Location())
	}

	out := make([]models.Appointment, 0, len(all))
	for _, ap := range all {
		if !Visible(ap, p) {
			continue
		}
		if term != "" && !matchesSearch(ap, term) {
			continue
		}
		if barbers != nil {
			key := ap.Barber
			if f.BarberField == ByBarberID {
				key = ap.BarberID
			}
			if _, ok := barbers[key]; !ok {
				continue
			}
		}
		if f.Date != nil && (ap.Date.Before(dayStart) || ap.Date.After(dayEnd)) {
			continue
		}
		out = append(out, ap)
	}

	slices.SortStableFunc(out, func(a, b models.Appointment) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

func matchesSearch(ap models.Appointment, term string) bool {
	if strings.Contains(strings.ToLower(ap.ClientName), term) {
		return true
	}
	return ap.ClientPhone != "" && strings.Contains(ap.ClientPhone, term)
}

// barberSet returns nil when the selection means "no filter".
func barberSet(sel []string) map[string]struct{} {
	if len(sel) == 0 || slices.Contains(sel, AllBarbers) {
		return nil
	}
	set := make(map[string]struct{}, len(sel))
	for _, b := range sel {
		if b = strings.TrimSpace(b); b != "" {
			set[b] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
