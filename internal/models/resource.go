package models

import (
	"time"
)

// Resource is the per-village, per-type ledger row. Invariant after every
// operation: 0 <= Amount <= StorageCapacity. Amounts are stored as doubles;
// production rates are per hour and rounded to 2 decimal places.
type Resource struct {
	ID              uint      `gorm:"primaryKey"`
	VillageID       uint      `gorm:"not null;uniqueIndex:idx_village_resource_type"`
	Type            string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_village_resource_type"`
	Amount          float64   `gorm:"default:0;not null"`
	ProductionRate  float64   `gorm:"default:0;not null"` // units per hour
	StorageCapacity float64   `gorm:"default:1000;not null"`
	LastUpdated     time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// ResourceProductionLog is an append-only audit row written once per tick per
// resource whose amount changed.
type ResourceProductionLog struct {
	ID             uint      `gorm:"primaryKey"`
	VillageID      uint      `gorm:"not null;index"`
	Type           string    `gorm:"type:varchar(10);not null"`
	AmountProduced float64   `gorm:"not null"`
	FinalAmount    float64   `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

// Resource type constants
const (
	ResourceWood = "wood"
	ResourceClay = "clay"
	ResourceIron = "iron"
	ResourceCrop = "crop"
)

// ResourceTypes lists every ledger type in their canonical order.
var ResourceTypes = []string{ResourceWood, ResourceClay, ResourceIron, ResourceCrop}

func (Resource) TableName() string {
	return "resources"
}

func (ResourceProductionLog) TableName() string {
	return "resource_production_logs"
}
