package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor domain.Principal,
	filters domain.Filters,
) ([]dto.AppointmentListDTO, error) {

	all, err := uc.repo.ListAppointments(ctx, actor)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(domain.BuildVisible(all, actor, filters)), nil
}
