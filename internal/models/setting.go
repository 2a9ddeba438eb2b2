package models

import "time"

// Setting is one row of the restaurant's generic key-value configuration
// store. Writes are last-write-wins upserts keyed by Name.
type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Value       string    `gorm:"not null" json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "restaurant_settings"
}
