package models

import (
	"time"
)

type Player struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(60);uniqueIndex;not null" json:"name"`
	WorldID       uint      `gorm:"not null;default:1;index" json:"world_id"`
	Population    int       `gorm:"default:0;not null" json:"population"`
	VillagesCount int       `gorm:"default:0;not null" json:"villages_count"`
	Points        int64     `gorm:"default:0;not null" json:"points"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}
