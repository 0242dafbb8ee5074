package models

// ActivityEntry records a mutating operation for the activity feed.
type ActivityEntry struct {
	Base
	Action       string `gorm:"not null;index" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"size:64" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}

// TableName overrides the default pluralized table name.
func (ActivityEntry) TableName() string {
	return "activity_log"
}
