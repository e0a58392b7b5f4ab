package voting

import "context"

// VotingRepository хранит голосования. Create возвращает ErrVotingAlreadyActive,
// если у расписания уже есть ACTIVE голосование.
type VotingRepository interface {
	Create(ctx context.Context, v *Voting) error
	GetByPollID(ctx context.Context, pollID string) (*Voting, error)
	ListByState(ctx context.Context, state State) ([]Voting, error)
	UpdateState(ctx context.Context, id VotingID, state State) error
}

// RosterRepository хранит состав голосования в порядке записи.
type RosterRepository interface {
	// AddPlayer возвращает false, если игрок уже записан
	AddPlayer(ctx context.Context, p Player) (bool, error)
	// RemovePlayer возвращает false, если игрока не было в составе
	RemovePlayer(ctx context.Context, votingID VotingID, playerID int64) (bool, error)
	ListPlayers(ctx context.Context, votingID VotingID) ([]Player, error)
}
