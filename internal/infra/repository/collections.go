package repository

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/feed"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

const (
	CollectionAppointments = "appointments"
	CollectionUsers        = "users"
	CollectionSchedules    = "barber_schedules"
	CollectionServices     = "services"
)

// Collections are the document collections of the application.
type Collections struct {
	Appointments *store.Collection[models.Appointment]
	Users        *store.Collection[models.User]
	Schedules    *store.Collection[models.BarberSchedule]
	Services     *store.Collection[models.Service]
}

// NewCollections wires every collection to the same change feed. Appointment
// instants are read back in loc so wall-clock arithmetic sees shop time.
func NewCollections(
	db *gorm.DB,
	changes *feed.Broker,
	publisher feed.Publisher,
	loc *time.Location,
	log *zap.Logger,
) *Collections {
	return &Collections{
		Appointments: store.NewCollection(db, CollectionAppointments, changes, publisher, log,
			store.WithNormalizer(func(ap *models.Appointment) { normalizeAppointment(ap, loc) }),
		),
		Users:     store.NewCollection[models.User](db, CollectionUsers, changes, publisher, log),
		Schedules: store.NewCollection[models.BarberSchedule](db, CollectionSchedules, changes, publisher, log),
		Services:  store.NewCollection[models.Service](db, CollectionServices, changes, publisher, log),
	}
}

func normalizeAppointment(ap *models.Appointment, loc *time.Location) {
	ap.Date = ap.Date.In(loc)
	if ap.CompletedAt != nil {
		t := ap.CompletedAt.In(loc)
		ap.CompletedAt = &t
	}
}
