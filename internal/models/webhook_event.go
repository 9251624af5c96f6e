package models

import (
	"time"
)

// WebhookEvent is the forensic record of a provider callback. It is written
// before signature verification, so every delivery leaves a trail whatever
// the outcome. ErrorNote carries the reason when processing stops early.
type WebhookEvent struct {
	ID        uint   `gorm:"primarykey"`
	EventID   string `gorm:"uniqueIndex;not null"` // assigned by us, not the provider
	Provider  string `gorm:"not null"`
	EventType string `gorm:"not null"`
	Reference string `gorm:"index"`
	Signature string
	Payload   string `gorm:"type:text"` // exact raw request bytes
	Processed bool   `gorm:"not null;default:false"`
	ErrorNote string
	CreatedAt time.Time
	UpdatedAt time.Time
}
