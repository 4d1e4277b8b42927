package models

import (
	"time"
)

type Troop struct {
	ID        uint      `gorm:"primaryKey"`
	VillageID uint      `gorm:"not null;uniqueIndex:idx_village_unit_type"`
	UnitType  string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_village_unit_type"`
	Count     int       `gorm:"default:0;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Troop) TableName() string {
	return "troops"
}
