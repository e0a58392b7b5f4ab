package voting

import (
	"context"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
)

// resolveUsers возвращает пользователей в порядке ids. Неизвестные получают только ID.
func resolveUsers(ctx context.Context, dir UserDirectory, ids []int64) ([]user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []user.User
	if dir != nil {
		var err error
		if found, err = dir.ListByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}
	byID := make(map[int64]user.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]user.User, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			u = user.User{ID: id}
		}
		out = append(out, u)
	}
	return out, nil
}
