package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentListDTO struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	ClientID    string    `json:"clientId"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone,omitempty"`
	BarberID    string    `json:"barberId"`
	Barber      string    `json:"barber"`
	Service     string    `json:"service"`
	Duration    int       `json:"duration"`
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Date,
			End:         appointment.End(ap),
			Status:      ap.Status,
			ClientID:    ap.ClientID,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			BarberID:    ap.BarberID,
			Barber:      ap.Barber,
			Service:     ap.Service,
			Duration:    appointment.DurationOf(ap.Service),
		})
	}
	return out
}
