package models

import "time"

// VoteGORM - таблица `votes`, только вставка
type VoteGORM struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	VoteID    string `gorm:"uniqueIndex;size:36" json:"id"`
	VoterID   int64  `gorm:"not null;index" json:"voter_id"`
	PlayerA   int64  `gorm:"not null" json:"player_a"`
	PlayerB   int64  `gorm:"not null" json:"player_b"`
	WinnerID  *int64 `json:"winner_id"` // nil - "не знаю"
	CreatedAt time.Time
}

func (VoteGORM) TableName() string { return "votes" }

// All - модели для AutoMigrate
func All() []any {
	return []any{
		&LocationGORM{},
		&UserGORM{},
		&GameScheduleGORM{},
		&VotingGORM{},
		&VotingPlayerGORM{},
		&VoteGORM{},
	}
}
