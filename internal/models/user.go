package models

import "time"

// UserGORM - таблица `users`. ID совпадает с Telegram ID
type UserGORM struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FirstName string    `gorm:"size:255" json:"first_name"`
	LastName  string    `gorm:"size:255" json:"last_name"`
	Username  string    `gorm:"size:255;index" json:"username"`
	PhotoURL  string    `gorm:"size:500" json:"photo_url"`
	Admin     bool      `gorm:"not null;default:false" json:"admin"`
	ChatID    int64     `json:"chat_id"` // личный чат для уведомлений
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserGORM) TableName() string { return "users" }
