package models

import "time"

// User is a wallet identity, keyed by its lowercase address.
type User struct {
	Address   string    `gorm:"primaryKey;size:42" json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
