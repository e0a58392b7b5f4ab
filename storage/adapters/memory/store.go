package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/rating"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
)

// Store держит все данные в памяти процесса. Используется в тестах и при DB_DRIVER=memory.
type Store struct {
	mu sync.RWMutex

	schedules map[schedule.ScheduleID]schedule.GameSchedule
	locations map[location.LocationID]location.Location
	users     map[int64]user.User
	votings   map[voting.VotingID]voting.Voting
	rosters   map[voting.VotingID][]voting.Player
	votes     []rating.Vote
}

func NewStore() *Store {
	return &Store{
		schedules: make(map[schedule.ScheduleID]schedule.GameSchedule),
		locations: make(map[location.LocationID]location.Location),
		users:     make(map[int64]user.User),
		votings:   make(map[voting.VotingID]voting.Voting),
		rosters:   make(map[voting.VotingID][]voting.Player),
	}
}

func (s *Store) Schedules() *ScheduleRepository { return &ScheduleRepository{s: s} }
func (s *Store) Locations() *LocationRepository { return &LocationRepository{s: s} }
func (s *Store) Users() *UserRepository         { return &UserRepository{s: s} }
func (s *Store) Votings() *VotingRepository     { return &VotingRepository{s: s} }
func (s *Store) Roster() *RosterRepository      { return &RosterRepository{s: s} }
func (s *Store) Votes() *VoteRepository         { return &VoteRepository{s: s} }

type ScheduleRepository struct{ s *Store }

func (r *ScheduleRepository) GetByID(_ context.Context, id schedule.ScheduleID) (*schedule.GameSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sch, ok := r.s.schedules[id]
	if !ok {
		return nil, nil
	}
	return &sch, nil
}

func (r *ScheduleRepository) ListByState(_ context.Context, state schedule.State) ([]schedule.GameSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]schedule.GameSchedule, 0)
	for _, sch := range r.s.schedules {
		if sch.State == state {
			out = append(out, sch)
		}
	}
	sortSchedules(out)
	return out, nil
}

func (r *ScheduleRepository) List(_ context.Context) ([]schedule.GameSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]schedule.GameSchedule, 0, len(r.s.schedules))
	for _, sch := range r.s.schedules {
		out = append(out, sch)
	}
	sortSchedules(out)
	return out, nil
}

func (r *ScheduleRepository) Save(_ context.Context, sch *schedule.GameSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.schedules[sch.ID] = *sch
	return nil
}

func sortSchedules(items []schedule.GameSchedule) {
	slices.SortFunc(items, func(a, b schedule.GameSchedule) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

type LocationRepository struct{ s *Store }

func (r *LocationRepository) GetByID(_ context.Context, id location.LocationID) (*location.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	loc, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (r *LocationRepository) List(_ context.Context) ([]location.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]location.Location, 0, len(r.s.locations))
	for _, loc := range r.s.locations {
		out = append(out, loc)
	}
	slices.SortFunc(out, func(a, b location.Location) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *LocationRepository) Save(_ context.Context, loc *location.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locations[loc.ID] = *loc
	return nil
}

func (r *LocationRepository) Delete(_ context.Context, id location.LocationID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.locations, id)
	return nil
}

type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(_ context.Context, id int64) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) ListByIDs(_ context.Context, ids []int64) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]user.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b user.User) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *UserRepository) Save(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

type VotingRepository struct{ s *Store }

func (r *VotingRepository) Create(_ context.Context, v *voting.Voting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v.State == voting.StateActive {
		for _, existing := range r.s.votings {
			if existing.GameScheduleID == v.GameScheduleID && existing.State == voting.StateActive {
				return voting.ErrVotingAlreadyActive
			}
		}
	}
	r.s.votings[v.ID] = *v
	return nil
}

func (r *VotingRepository) GetByPollID(_ context.Context, pollID string) (*voting.Voting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.votings {
		if v.PollID == pollID {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *VotingRepository) ListByState(_ context.Context, state voting.State) ([]voting.Voting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]voting.Voting, 0)
	for _, v := range r.s.votings {
		if v.State == state {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b voting.Voting) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *VotingRepository) UpdateState(_ context.Context, id voting.VotingID, state voting.State) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.votings[id]
	if !ok {
		return voting.ErrVotingNotFound
	}
	v.State = state
	r.s.votings[id] = v
	return nil
}

// RosterRepository хранит составы в порядке вставки
type RosterRepository struct{ s *Store }

func (r *RosterRepository) AddPlayer(_ context.Context, p voting.Player) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rosters[p.VotingID] {
		if existing.PlayerID == p.PlayerID {
			return false, nil
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.s.rosters[p.VotingID] = append(r.s.rosters[p.VotingID], p)
	return true, nil
}

func (r *RosterRepository) RemovePlayer(_ context.Context, votingID voting.VotingID, playerID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	players := r.s.rosters[votingID]
	for i, p := range players {
		if p.PlayerID == playerID {
			r.s.rosters[votingID] = slices.Delete(slices.Clone(players), i, i+1)
			return true, nil
		}
	}
	return false, nil
}

func (r *RosterRepository) ListPlayers(_ context.Context, votingID voting.VotingID) ([]voting.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.Clone(r.s.rosters[votingID]), nil
}

type VoteRepository struct{ s *Store }

func (r *VoteRepository) Save(_ context.Context, v *rating.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.votes = append(r.s.votes, *v)
	return nil
}

func (r *VoteRepository) List(_ context.Context) ([]rating.Vote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.Clone(r.s.votes), nil
}
