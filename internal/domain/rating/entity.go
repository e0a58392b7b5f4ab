package rating

import (
	"errors"
	"time"
)

// BaseRating - рейтинг игрока без решённых сравнений
const BaseRating = 1500.0

// Vote - одно попарное сравнение "кто играет лучше". WinnerID == nil означает "не знаю".
type Vote struct {
	ID        string
	VoterID   int64
	PlayerA   int64
	PlayerB   int64
	WinnerID  *int64
	CreatedAt time.Time
}

// Resolved - голос с выбранным победителем
func (v Vote) Resolved() bool {
	return v.WinnerID != nil
}

func (v Vote) Validate() error {
	if v.VoterID == 0 || v.PlayerA == 0 || v.PlayerB == 0 {
		return ErrInvalidVote
	}
	if v.PlayerA == v.PlayerB {
		return ErrSamePlayer
	}
	if v.WinnerID != nil && *v.WinnerID != v.PlayerA && *v.WinnerID != v.PlayerB {
		return ErrWinnerNotInPair
	}
	return nil
}

// PlayerRating - строка таблицы рейтинга
type PlayerRating struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Username  string  `json:"username"`
	PhotoURL  string  `json:"photo_url"`
	Rating    float64 `json:"rating"`
}

var (
	ErrInvalidVote     = errors.New("vote must reference voter and two players")
	ErrSamePlayer      = errors.New("vote must compare two different players")
	ErrWinnerNotInPair = errors.New("winner must be one of the compared players")
)
