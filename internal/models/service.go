package models

type Service struct {
	Base

	// Key is the value stored on Appointment.Service.
	Key         string  `gorm:"size:100;uniqueIndex" json:"key"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`
}

func (Service) TableName() string {
	return "services"
}
