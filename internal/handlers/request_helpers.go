package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// filtersFromQuery reads ?search=&barbers=a,b&barberField=id&date=YYYY-MM-DD.
func filtersFromQuery(c *gin.Context, loc *time.Location) (domain.Filters, error) {
	f := domain.Filters{
		Search: c.Query("search"),
	}

	if raw := strings.TrimSpace(c.Query("barbers")); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				f.Barbers = append(f.Barbers, b)
			}
		}
	}

	if c.Query("barberField") == "id" {
		f.BarberField = domain.ByBarberID
	}

	if raw := c.Query("date"); raw != "" {
		d, err := timezone.ParseDate(raw, loc)
		if err != nil {
			return domain.Filters{}, httperr.ErrBusiness("invalid_date")
		}
		f.Date = &d
	}

	return f, nil
}
