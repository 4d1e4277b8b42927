package models

import (
	"time"
)

// CacheEntry backs the DB-based key-value store with TTL. The tick engine's
// duplicate-tick guard lives here so every worker process sees the same
// marker.
type CacheEntry struct {
	Key       string    `gorm:"type:varchar(120);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}
