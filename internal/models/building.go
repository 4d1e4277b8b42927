package models

import (
	"encoding/json"
	"time"
)

type Building struct {
	ID             uint         `gorm:"primaryKey"`
	VillageID      uint         `gorm:"not null;index"`
	BuildingTypeID uint         `gorm:"not null;index"`
	Type           BuildingType `gorm:"foreignKey:BuildingTypeID"`
	Level          int          `gorm:"default:1;not null"`
	IsActive       bool         `gorm:"default:true;not null"`
	CreatedAt      time.Time    `gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime"`
}

// BuildingType is immutable reference data seeded from the building catalog.
// Production and cost maps are stored as JSON keyed by resource type.
type BuildingType struct {
	ID           uint   `gorm:"primaryKey"`
	Key          string `gorm:"type:varchar(40);uniqueIndex;not null"`
	Name         string `gorm:"type:varchar(60);not null"`
	MaxLevel     int    `gorm:"default:20;not null"`
	Production   string `gorm:"type:text"` // {"wood": 10} per-hour base rates
	BaseCost     string `gorm:"type:text"` // {"wood": 40, "clay": 100, ...}
	BuildSeconds int    `gorm:"default:300;not null"`
}

// Building type keys referenced by the engine itself. Producer keys are only
// meaningful through their production maps; warehouse and granary are special
// to the storage calculator.
const (
	BuildingKeyWoodcutter   = "woodcutter"
	BuildingKeyClayPit      = "clay_pit"
	BuildingKeyIronMine     = "iron_mine"
	BuildingKeyCropland     = "cropland"
	BuildingKeyWarehouse    = "warehouse"
	BuildingKeyGranary      = "granary"
	BuildingKeyMainBuilding = "main_building"
	BuildingKeyBarracks     = "barracks"
)

func (Building) TableName() string {
	return "buildings"
}

func (BuildingType) TableName() string {
	return "building_types"
}

// ProductionRates decodes the production map. Types without production data
// (or with malformed data) yield an empty map, never an error.
func (t *BuildingType) ProductionRates() map[string]float64 {
	return decodeRates(t.Production)
}

// BaseCosts decodes the level-1 upgrade cost map.
func (t *BuildingType) BaseCosts() map[string]float64 {
	return decodeRates(t.BaseCost)
}

func decodeRates(raw string) map[string]float64 {
	if raw == "" {
		return map[string]float64{}
	}
	rates := map[string]float64{}
	if err := json.Unmarshal([]byte(raw), &rates); err != nil {
		return map[string]float64{}
	}
	return rates
}
