package models

import (
	"time"

	"gorm.io/gorm"
)

// LocationGORM - таблица `locations`, мягкое удаление через DeletedAt
type LocationGORM struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	LocationID    string `gorm:"uniqueIndex;size:36" json:"-"` // UUID
	Name          string `gorm:"size:255;not null" json:"name"`
	Address       string `gorm:"size:500" json:"address"`
	AddressMapURL string `gorm:"size:500" json:"address_map_url"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (LocationGORM) TableName() string { return "locations" }
