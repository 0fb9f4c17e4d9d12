package models

import "time"

// Account is the identity record behind a principal. It is kept apart from
// the User profile and paired with it by ID.
type Account struct {
	ID           string `gorm:"primaryKey;size:64" json:"uid"`
	Email        string `gorm:"size:100;index" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Provider     string `gorm:"size:30;default:'password'" json:"provider"`
	DisplayName  string `gorm:"size:100" json:"displayName"`
	PhotoURL     string `gorm:"size:512" json:"photoUrl"`
	Anonymous    bool   `json:"isAnonymous"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}
