package models

import "time"

// GameScheduleGORM - таблица `game_schedules`
type GameScheduleGORM struct {
	ID                  uint   `gorm:"primaryKey" json:"-"`
	ScheduleID          string `gorm:"uniqueIndex;size:36" json:"-"`
	DayOfWeek           string `gorm:"size:16;not null" json:"day_of_week"` // MONDAY..SUNDAY
	Time                string `gorm:"size:8;not null" json:"time"`         // HH:MM:SS
	DurationMinutes     int    `gorm:"not null;default:0" json:"duration_minutes"`
	LocationID          string `gorm:"size:36;index" json:"location_id"`
	VotingInAdvanceDays int    `gorm:"not null;default:0" json:"voting_in_advance_days"`
	VotingTime          string `gorm:"size:8;not null" json:"voting_time"`
	PlayersCount        int    `gorm:"not null" json:"players_count"`
	State               string `gorm:"size:16;not null;index" json:"state"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (GameScheduleGORM) TableName() string { return "game_schedules" }
