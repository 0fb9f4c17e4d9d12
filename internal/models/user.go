package models

// User is the profile document paired by id with an identity account.
type User struct {
	Base

	Name         string `gorm:"size:100" json:"name"`
	Email        string `gorm:"size:100;index" json:"email"`
	PhotoURL     string `gorm:"size:512" json:"photoUrl"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	Role         string `gorm:"size:20;default:'client';index" json:"role"`
	BarberID     string `gorm:"size:64" json:"barberId,omitempty"`
	BarberName   string `gorm:"size:100" json:"barberName,omitempty"`
	IsSubscribed bool   `json:"isSubscribed"`

	// Default predicted working window, minutes since midnight.
	StartTimePred *int `json:"startTimePred,omitempty"`
	EndTimePred   *int `json:"endTimePred,omitempty"`
}

func (User) TableName() string {
	return "users"
}
