package models

import "time"

// StoreMeta holds small key/value markers about persisted state, such as
// whether the budget list has ever been saved.
type StoreMeta struct {
	Key       string    `gorm:"size:64;primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default pluralized table name.
func (StoreMeta) TableName() string {
	return "store_meta"
}
