package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventLogEntry is the append-only audit trail. The core only ever writes
// it; reads are an admin report.
type EventLogEntry struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Timestamp   time.Time      `json:"timestamp" gorm:"index"`
	Username    string         `json:"username" gorm:"size:100"`
	ActionType  string         `json:"action_type" gorm:"size:50;index"`
	Description string         `json:"description" gorm:"type:text"`
	Details     datatypes.JSON `json:"details,omitempty"`
}

// LogEvent appends an audit entry. Call it inside the same transaction as
// the mutation it describes.
func LogEvent(db *gorm.DB, username, actionType, description string) error {
	if username == "" {
		username = "SYSTEM"
	}
	entry := EventLogEntry{
		Timestamp:   time.Now(),
		Username:    username,
		ActionType:  actionType,
		Description: description,
	}
	return db.Create(&entry).Error
}
