package models

import "time"

// AuditLog is append-only: entries are written by the services and never
// mutated or deleted afterwards.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Endpoint  string    `gorm:"size:255;not null" json:"endpoint"`
	Detail    string    `gorm:"type:text" json:"detail"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}
