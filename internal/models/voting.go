package models

import "time"

// VotingGORM - таблица `votings`. Частичный уникальный индекс не даёт
// завести второе ACTIVE голосование по одному расписанию.
type VotingGORM struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	VotingID       string    `gorm:"uniqueIndex;size:36" json:"id"`
	GameScheduleID string    `gorm:"size:36;not null;index:idx_votings_active_schedule,unique,where:state = 'ACTIVE'" json:"game_schedule_id"`
	PollID         string    `gorm:"size:64;not null;uniqueIndex" json:"poll_id"`
	ChatID         int64     `gorm:"not null" json:"chat_id"`
	MessageID      int       `json:"message_id"`
	GameTime       time.Time `gorm:"not null" json:"game_time"`
	State          string    `gorm:"size:16;not null;index" json:"state"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (VotingGORM) TableName() string { return "votings" }

// VotingPlayerGORM - таблица `voting_players`, порядок записи по (created_at, id)
type VotingPlayerGORM struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	VotingID  string `gorm:"size:36;not null;uniqueIndex:idx_voting_player" json:"voting_id"`
	PlayerID  int64  `gorm:"not null;uniqueIndex:idx_voting_player" json:"player_id"`
	CreatedAt time.Time
}

func (VotingPlayerGORM) TableName() string { return "voting_players" }
