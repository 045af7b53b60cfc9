package models

import "time"

// StateEntry is one key/value row of the persisted store.
type StateEntry struct {
	Key       string `gorm:"column:state_key;primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (StateEntry) TableName() string {
	return "state_entries"
}
