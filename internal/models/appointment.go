package models

import "time"

type Appointment struct {
	Base

	ClientID    string `gorm:"size:64;index" json:"clientId"`
	ClientName  string `gorm:"size:100" json:"clientName"`
	ClientEmail string `gorm:"size:100" json:"clientEmail"`
	ClientPhone string `gorm:"size:20" json:"clientPhone,omitempty"`

	BarberID string `gorm:"size:64;index" json:"barberId"`
	Barber   string `gorm:"size:100" json:"barber"`

	// Service is the service key; the duration is derived from it at read time.
	Service string `gorm:"size:100" json:"service"`

	Date   time.Time `gorm:"index" json:"date"`
	Status string    `gorm:"size:20;default:'agendada'" json:"status"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
