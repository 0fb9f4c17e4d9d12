package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ListAppointmentsByMonth feeds calendar views: the visible appointments of
// one month in shop time.
type ListAppointmentsByMonth struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	actor domain.Principal,
	filters domain.Filters,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	loc := uc.clock.Location()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	all, err := uc.repo.ListAppointments(ctx, actor)
	if err != nil {
		return nil, err
	}

	filters.Date = nil
	visible := domain.BuildVisible(all, actor, filters)

	inMonth := visible[:0]
	for _, ap := range visible {
		if !ap.Date.Before(start) && ap.Date.Before(end) {
			inMonth = append(inMonth, ap)
		}
	}

	return dto.AppointmentList(inMonth), nil
}
