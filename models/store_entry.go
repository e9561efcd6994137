package models

import "time"

// StoreEntry is one key of the persisted application state, stored as JSON text
type StoreEntry struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the StoreEntry model
func (StoreEntry) TableName() string {
	return "store_entries"
}
