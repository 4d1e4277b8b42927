package models

import (
	"time"
)

// Queue rows are created by action services with a future completion
// timestamp and flipped to completed exactly once by the tick engine. They
// are never reverted.

type BuildingQueue struct {
	ID          uint      `gorm:"primaryKey"`
	VillageID   uint      `gorm:"not null;index"`
	BuildingID  uint      `gorm:"not null;index"`
	Building    Building  `gorm:"foreignKey:BuildingID"`
	TargetLevel int       `gorm:"not null"`
	CompletedAt time.Time `gorm:"not null;index"`
	IsCompleted bool      `gorm:"default:false;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

type TrainingQueue struct {
	ID          uint      `gorm:"primaryKey"`
	VillageID   uint      `gorm:"not null;index"`
	UnitType    string    `gorm:"type:varchar(40);not null"`
	Count       int       `gorm:"not null"`
	CompletedAt time.Time `gorm:"not null;index"`
	IsCompleted bool      `gorm:"default:false;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

type Movement struct {
	ID              uint      `gorm:"primaryKey"`
	VillageID       uint      `gorm:"not null;index"` // origin
	TargetVillageID uint      `gorm:"not null;index"`
	Kind            string    `gorm:"type:varchar(20);not null"`
	ArrivesAt       time.Time `gorm:"not null;index"`
	IsCompleted     bool      `gorm:"default:false;not null;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

type GameEvent struct {
	ID          uint      `gorm:"primaryKey"`
	VillageID   uint      `gorm:"not null;index"`
	EventType   string    `gorm:"type:varchar(40);not null"`
	Payload     string    `gorm:"type:text"`
	TriggeredAt time.Time `gorm:"not null;index"`
	IsCompleted bool      `gorm:"default:false;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Movement kind constants
const (
	MovementKindAttack   = "attack"
	MovementKindSupport  = "support"
	MovementKindReturn   = "return"
	MovementKindSettlers = "settlers"
)

func (BuildingQueue) TableName() string {
	return "building_queues"
}

func (TrainingQueue) TableName() string {
	return "training_queues"
}

func (Movement) TableName() string {
	return "movements"
}

func (GameEvent) TableName() string {
	return "game_events"
}
