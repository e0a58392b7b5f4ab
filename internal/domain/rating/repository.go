package rating

import "context"

// VoteRepository - журнал голосов, только добавление
type VoteRepository interface {
	Save(ctx context.Context, v *Vote) error
	List(ctx context.Context) ([]Vote, error)
}
