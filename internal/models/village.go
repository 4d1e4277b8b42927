package models

import (
	"time"
)

type Village struct {
	ID         uint       `gorm:"primaryKey"`
	Name       string     `gorm:"type:varchar(60);not null"`
	PlayerID   uint       `gorm:"not null;index"`
	Player     Player     `gorm:"foreignKey:PlayerID"`
	WorldID    uint       `gorm:"not null;default:1;index"`
	X          int        `gorm:"not null;index:idx_village_coords"`
	Y          int        `gorm:"not null;index:idx_village_coords"`
	Population int        `gorm:"default:0;not null"`
	IsCapital  bool       `gorm:"default:false;not null"`
	IsActive   bool       `gorm:"default:true;not null"`
	Buildings  []Building `gorm:"foreignKey:VillageID"`
	Resources  []Resource `gorm:"foreignKey:VillageID"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (Village) TableName() string {
	return "villages"
}

// Resource returns the village's ledger row for the given resource type, or
// nil when the row is not loaded or missing.
func (v *Village) Resource(resourceType string) *Resource {
	for i := range v.Resources {
		if v.Resources[i].Type == resourceType {
			return &v.Resources[i]
		}
	}
	return nil
}
