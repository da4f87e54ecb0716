package models

import "time"

// Image is an uploaded picture stored in the database blob backend.
// Images are never updated and are not removed together with a dream.
type Image struct {
	Filename    string    `gorm:"primaryKey;size:64"`
	ContentType string    `gorm:"size:64;not null"`
	Data        []byte    `gorm:"not null"`
	Size        int64     `gorm:"not null"`
	CreatedAt   time.Time
}
