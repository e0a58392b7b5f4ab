package voting

import (
	"errors"
	"slices"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
)

type VotingID string

// State - состояние голосования. CLOSED терминальное.
type State string

const (
	StateActive State = "ACTIVE"
	StateClosed State = "CLOSED"
)

// Voting - один экземпляр голосования по расписанию, привязанный к опросу в Telegram
type Voting struct {
	ID             VotingID
	GameScheduleID schedule.ScheduleID
	PollID         string
	ChatID         int64
	MessageID      int
	GameTime       time.Time
	State          State
	CreatedAt      time.Time
}

// Player - запись в составе. Порядок CreatedAt определяет, кто играет, а кто в запасе.
type Player struct {
	VotingID  VotingID
	PlayerID  int64
	CreatedAt time.Time
}

// Индексы вариантов ответа в опросе
const (
	OptionPlaying  = 0
	OptionSkipping = 1
)

// PollOptions - варианты ответа, порядок совпадает с Option* константами
var PollOptions = []string{"Играю", "Пропускаю, но хочу играть"}

// PollUser - автор ответа на опрос
type PollUser struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// PollAnswer - входящее событие poll_answer
type PollAnswer struct {
	PollID    string
	User      PollUser
	OptionIDs []int
}

// VotedYes - выбран вариант "Играю". Любой другой ответ, в том числе отзыв голоса, означает отказ.
func (a PollAnswer) VotedYes() bool {
	return slices.Contains(a.OptionIDs, OptionPlaying)
}

var (
	ErrVotingNotFound      = errors.New("voting not found")
	ErrVotingAlreadyActive = errors.New("schedule already has an active voting")
)
