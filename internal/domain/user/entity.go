package user

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// User - игрок, идентифицированный по Telegram ID
type User struct {
	ID        int64 // Telegram user id
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	Admin     bool
	ChatID    int64 // приватный чат для личных уведомлений
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName возвращает имя для сообщений в чате.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	switch {
	case name != "" && u.Username != "":
		return name + " (@" + u.Username + ")"
	case name != "":
		return name
	case u.Username != "":
		return "@" + u.Username
	default:
		return "id" + strconv.FormatInt(u.ID, 10)
	}
}

var ErrUserNotFound = errors.New("user not found")
