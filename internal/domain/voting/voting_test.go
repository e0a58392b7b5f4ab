package voting_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
	"github.com/VolleyLabs/VolleyballRating-sub000/storage/adapters/memory"
)

const chatID = int64(-1001)

type pollCall struct {
	chatID   int64
	question string
	options  []string
}

type fakeMessenger struct {
	mu       sync.Mutex
	polls    []pollCall
	pinned   []int
	messages []string
	pollErr  error
	msgErr   error
}

func (m *fakeMessenger) SendPoll(chat int64, question string, options []string) (voting.SentPoll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pollErr != nil {
		return voting.SentPoll{}, m.pollErr
	}
	m.polls = append(m.polls, pollCall{chatID: chat, question: question, options: options})
	n := len(m.polls)
	return voting.SentPoll{MessageID: 100 + n, PollID: fmt.Sprintf("poll-%d", n)}, nil
}

func (m *fakeMessenger) PinMessage(_ int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pinned = append(m.pinned, messageID)
	return nil
}

func (m *fakeMessenger) SendMessage(_ int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.msgErr != nil {
		return m.msgErr
	}
	m.messages = append(m.messages, text)
	return nil
}

func (m *fakeMessenger) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

type task struct {
	name  string
	delay time.Duration
	fn    func(ctx context.Context) error
}

type fakeTasks struct{ tasks []task }

func (f *fakeTasks) After(name string, delay time.Duration, fn func(ctx context.Context) error) {
	f.tasks = append(f.tasks, task{name: name, delay: delay, fn: fn})
}

type env struct {
	store     *memory.Store
	messenger *fakeMessenger
	tasks     *fakeTasks
	lifecycle voting.Lifecycle
	reconcile voting.Reconciler
}

func newEnv(t *testing.T, minPlayers int) *env {
	t.Helper()
	store := memory.NewStore()
	messenger := &fakeMessenger{}
	tasks := &fakeTasks{}
	schedules := schedule.NewScheduleService(store.Schedules())
	users := user.NewUserService(store.Users())

	return &env{
		store:     store,
		messenger: messenger,
		tasks:     tasks,
		lifecycle: voting.Lifecycle{
			Schedules: schedules,
			Locations: location.NewService(store.Locations()),
			Votings:   store.Votings(),
			Roster:    store.Roster(),
			Users:     users,
			Messenger: messenger,
			Tasks:     tasks,
			ChatID:    chatID,
			Location:  time.UTC,
		},
		reconcile: voting.Reconciler{
			Votings:         store.Votings(),
			Roster:          store.Roster(),
			Schedules:       schedules,
			Users:           users,
			Messenger:       messenger,
			MinPlayersCount: minPlayers,
		},
	}
}

func (e *env) addSchedule(t *testing.T, id schedule.ScheduleID, playersCount int) schedule.GameSchedule {
	t.Helper()
	sch := schedule.GameSchedule{
		ID:                  id,
		DayOfWeek:           time.Monday,
		Time:                schedule.TimeOfDay{Hour: 19, Minute: 30},
		Duration:            2 * time.Hour,
		LocationID:          "gym",
		VotingInAdvanceDays: 2,
		VotingTime:          schedule.TimeOfDay{Hour: 18},
		PlayersCount:        playersCount,
		State:               schedule.StateActive,
	}
	if err := e.store.Schedules().Save(context.Background(), &sch); err != nil {
		t.Fatalf("save schedule: %v", err)
	}
	return sch
}

func (e *env) addVoting(t *testing.T, sch schedule.GameSchedule, pollID string, state voting.State, gameTime time.Time) voting.Voting {
	t.Helper()
	v := voting.Voting{
		ID:             voting.VotingID("v-" + pollID),
		GameScheduleID: sch.ID,
		PollID:         pollID,
		ChatID:         chatID,
		GameTime:       gameTime,
		State:          voting.StateActive,
	}
	if err := e.store.Votings().Create(context.Background(), &v); err != nil {
		t.Fatalf("create voting: %v", err)
	}
	if state != voting.StateActive {
		if err := e.store.Votings().UpdateState(context.Background(), v.ID, state); err != nil {
			t.Fatalf("update state: %v", err)
		}
		v.State = state
	}
	return v
}

func (e *env) answer(t *testing.T, pollID string, userID int64, options ...int) {
	t.Helper()
	ans := voting.PollAnswer{
		PollID:    pollID,
		User:      voting.PollUser{ID: userID, FirstName: fmt.Sprintf("P%d", userID)},
		OptionIDs: options,
	}
	if err := e.reconcile.HandlePollAnswer(context.Background(), ans); err != nil {
		t.Fatalf("handle answer from %d: %v", userID, err)
	}
}

func (e *env) rosterIDs(t *testing.T, id voting.VotingID) []int64 {
	t.Helper()
	players, err := e.store.Roster().ListPlayers(context.Background(), id)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	return voting.Roster(players).PlayerIDs()
}

var saturdayEvening = time.Date(2025, time.January, 4, 18, 0, 0, 0, time.UTC)

func TestGameTime(t *testing.T) {
	sch := schedule.GameSchedule{VotingInAdvanceDays: 2, Time: schedule.TimeOfDay{Hour: 19, Minute: 30, Second: 45}}
	now := time.Date(2025, time.January, 4, 18, 0, 37, 500, time.UTC)
	want := time.Date(2025, time.January, 6, 19, 30, 0, 0, time.UTC)
	if got := voting.GameTime(now, sch); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestOpenSendsPollAndSchedulesPin(t *testing.T) {
	e := newEnv(t, 4)
	sch := e.addSchedule(t, "s1", 12)
	if err := e.store.Locations().Save(context.Background(), &location.Location{ID: "gym", Name: "Школа 57"}); err != nil {
		t.Fatalf("save location: %v", err)
	}

	v, err := e.lifecycle.Open(context.Background(), sch, saturdayEvening)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(e.messenger.polls) != 1 {
		t.Fatalf("expected one poll, got %d", len(e.messenger.polls))
	}
	poll := e.messenger.polls[0]
	if poll.chatID != chatID || len(poll.options) != 2 || poll.options[0] != voting.PollOptions[0] {
		t.Fatalf("unexpected poll %+v", poll)
	}
	if !strings.Contains(poll.question, "06.01") || !strings.Contains(poll.question, "19:30") || !strings.Contains(poll.question, "Школа 57") {
		t.Fatalf("question misses game details: %q", poll.question)
	}
	if v.State != voting.StateActive || v.PollID != "poll-1" || v.MessageID != 101 {
		t.Fatalf("unexpected voting %+v", v)
	}
	if !v.GameTime.Equal(time.Date(2025, time.January, 6, 19, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected game time %s", v.GameTime)
	}

	stored, err := e.store.Votings().GetByPollID(context.Background(), "poll-1")
	if err != nil || stored == nil || stored.ID != v.ID {
		t.Fatalf("voting not persisted: %+v %v", stored, err)
	}

	if len(e.tasks.tasks) != 1 || e.tasks.tasks[0].delay != voting.DefaultPinDelay {
		t.Fatalf("expected pin task with default delay, got %+v", e.tasks.tasks)
	}
	if err := e.tasks.tasks[0].fn(context.Background()); err != nil {
		t.Fatalf("pin task: %v", err)
	}
	if len(e.messenger.pinned) != 1 || e.messenger.pinned[0] != 101 {
		t.Fatalf("expected message 101 pinned, got %v", e.messenger.pinned)
	}
}

func TestOpenPollFailureLeavesNoVoting(t *testing.T) {
	e := newEnv(t, 4)
	sch := e.addSchedule(t, "s1", 12)
	e.messenger.pollErr = errors.New("telegram down")

	if _, err := e.lifecycle.Open(context.Background(), sch, saturdayEvening); err == nil {
		t.Fatalf("expected error")
	}
	active, _ := e.store.Votings().ListByState(context.Background(), voting.StateActive)
	if len(active) != 0 {
		t.Fatalf("expected no votings, got %d", len(active))
	}
	if len(e.tasks.tasks) != 0 {
		t.Fatalf("pin must not be scheduled")
	}
}

func TestStartVotingsOpensOncePerSchedule(t *testing.T) {
	e := newEnv(t, 4)
	e.addSchedule(t, "s1", 12)
	e.addSchedule(t, "s2", 12)

	opened, err := e.lifecycle.StartVotings(context.Background(), saturdayEvening)
	if err != nil {
		t.Fatalf("start votings: %v", err)
	}
	if len(opened) != 2 {
		t.Fatalf("expected 2 votings, got %d", len(opened))
	}

	opened, err = e.lifecycle.StartVotings(context.Background(), saturdayEvening.Add(30*time.Second))
	if err != nil {
		t.Fatalf("second tick: %v", err)
	}
	if len(opened) != 0 || len(e.messenger.polls) != 2 {
		t.Fatalf("expected no duplicate votings, opened %d polls %d", len(opened), len(e.messenger.polls))
	}

	opened, _ = e.lifecycle.StartVotings(context.Background(), saturdayEvening.Add(24*time.Hour))
	if len(opened) != 0 {
		t.Fatalf("sunday must not match")
	}
}

func TestNotifyAndCloseListsStarters(t *testing.T) {
	e := newEnv(t, 1)
	sch := e.addSchedule(t, "s1", 2)
	gameDay := time.Date(2025, time.January, 6, 19, 30, 0, 0, time.UTC)
	today := e.addVoting(t, sch, "p-today", voting.StateActive, gameDay)
	other := e.addSchedule(t, "s2", 2)
	later := e.addVoting(t, other, "p-later", voting.StateActive, gameDay.AddDate(0, 0, 1))

	for _, id := range []int64{1, 2, 3} {
		e.answer(t, "p-today", id, voting.OptionPlaying)
	}

	closed, err := e.lifecycle.NotifyAndClose(context.Background(), time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("notify and close: %v", err)
	}
	if closed != 1 {
		t.Fatalf("expected one closed voting, got %d", closed)
	}
	msgs := e.messenger.sent()
	if len(msgs) != 1 {
		t.Fatalf("expected one roster message, got %v", msgs)
	}
	if !strings.Contains(msgs[0], "1. P1") || !strings.Contains(msgs[0], "2. P2") || strings.Contains(msgs[0], "P3") {
		t.Fatalf("unexpected roster message %q", msgs[0])
	}

	active, _ := e.store.Votings().ListByState(context.Background(), voting.StateActive)
	if len(active) != 1 || active[0].ID != later.ID {
		t.Fatalf("expected only tomorrow's voting to stay active, got %+v", active)
	}
	closedList, _ := e.store.Votings().ListByState(context.Background(), voting.StateClosed)
	if len(closedList) != 1 || closedList[0].ID != today.ID {
		t.Fatalf("expected today's voting closed, got %+v", closedList)
	}
}

func TestNotifyFailureKeepsVotingActive(t *testing.T) {
	e := newEnv(t, 1)
	sch := e.addSchedule(t, "s1", 2)
	gameDay := time.Date(2025, time.January, 6, 19, 30, 0, 0, time.UTC)
	e.addVoting(t, sch, "p1", voting.StateActive, gameDay)
	e.messenger.msgErr = errors.New("blocked")

	closed, err := e.lifecycle.NotifyAndClose(context.Background(), gameDay)
	if err != nil {
		t.Fatalf("notify and close: %v", err)
	}
	if closed != 0 {
		t.Fatalf("expected nothing closed, got %d", closed)
	}
	active, _ := e.store.Votings().ListByState(context.Background(), voting.StateActive)
	if len(active) != 1 {
		t.Fatalf("voting must stay active after failed notify")
	}
}

func TestRosterKeepsJoinOrder(t *testing.T) {
	e := newEnv(t, 2)
	sch := e.addSchedule(t, "s1", 2)
	v := e.addVoting(t, sch, "p1", voting.StateActive, saturdayEvening)

	for _, id := range []int64{5, 3, 9, 1} {
		e.answer(t, "p1", id, voting.OptionPlaying)
	}
	e.answer(t, "p1", 3, voting.OptionPlaying)

	got := e.rosterIDs(t, v.ID)
	want := []int64{5, 3, 9, 1}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(e.messenger.sent()) != 0 {
		t.Fatalf("active voting must not notify, got %v", e.messenger.sent())
	}

	e.answer(t, "p1", 5, voting.OptionSkipping)
	e.answer(t, "p1", 5, voting.OptionSkipping)
	e.answer(t, "p1", 42)
	if got := e.rosterIDs(t, v.ID); fmt.Sprint(got) != fmt.Sprint([]int64{3, 9, 1}) {
		t.Fatalf("unexpected roster after leave %v", got)
	}

	e.answer(t, "p1", 5, voting.OptionPlaying)
	if got := e.rosterIDs(t, v.ID); got[len(got)-1] != 5 {
		t.Fatalf("rejoin must go to the end, got %v", got)
	}
}

func TestRetractionWithdraws(t *testing.T) {
	e := newEnv(t, 2)
	sch := e.addSchedule(t, "s1", 2)
	v := e.addVoting(t, sch, "p1", voting.StateActive, saturdayEvening)
	e.answer(t, "p1", 7, voting.OptionPlaying)
	e.answer(t, "p1", 7)
	if got := e.rosterIDs(t, v.ID); len(got) != 0 {
		t.Fatalf("expected empty roster, got %v", got)
	}
}

func TestSubstitutePromotionOnClosedVoting(t *testing.T) {
	e := newEnv(t, 1)
	sch := e.addSchedule(t, "s1", 2)
	v := e.addVoting(t, sch, "p1", voting.StateActive, saturdayEvening)
	for _, id := range []int64{1, 2, 3} {
		e.answer(t, "p1", id, voting.OptionPlaying)
	}
	if err := e.store.Votings().UpdateState(context.Background(), v.ID, voting.StateClosed); err != nil {
		t.Fatalf("close: %v", err)
	}

	e.answer(t, "p1", 1, voting.OptionSkipping)
	msgs := e.messenger.sent()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "P1") || !strings.Contains(msgs[0], "P3") || !strings.HasPrefix(msgs[0], "🔄") {
		t.Fatalf("expected swap notice naming P1 and P3, got %v", msgs)
	}
	if got := e.rosterIDs(t, v.ID); fmt.Sprint(got) != fmt.Sprint([]int64{2, 3}) {
		t.Fatalf("unexpected roster %v", got)
	}

	// замены больше нет
	e.answer(t, "p1", 2, voting.OptionSkipping)
	msgs = e.messenger.sent()
	if len(msgs) != 2 || !strings.HasPrefix(msgs[1], "➖") || !strings.Contains(msgs[1], "P2") {
		t.Fatalf("expected plain leave notice, got %v", msgs)
	}
}

func TestLeaveBelowMinimumWarns(t *testing.T) {
	e := newEnv(t, 2)
	sch := e.addSchedule(t, "s1", 2)
	v := e.addVoting(t, sch, "p1", voting.StateActive, saturdayEvening)
	for _, id := range []int64{1, 2, 3} {
		e.answer(t, "p1", id, voting.OptionPlaying)
	}
	_ = e.store.Votings().UpdateState(context.Background(), v.ID, voting.StateClosed)

	// уход запасного не сообщается
	e.answer(t, "p1", 3, voting.OptionSkipping)
	if len(e.messenger.sent()) != 0 {
		t.Fatalf("substitute leave must be silent, got %v", e.messenger.sent())
	}

	e.answer(t, "p1", 2, voting.OptionSkipping)
	msgs := e.messenger.sent()
	if len(msgs) != 1 || !strings.HasPrefix(msgs[0], "⚠️") {
		t.Fatalf("expected short warning, got %v", msgs)
	}
}

func TestJoinThresholdsOnClosedVoting(t *testing.T) {
	cases := []struct {
		name       string
		minPlayers int
		existing   int
		prefix     string
	}{
		{name: "safe at minimum", minPlayers: 1, existing: 0, prefix: "✅"},
		{name: "still short", minPlayers: 3, existing: 0, prefix: "➕"},
		{name: "plain join", minPlayers: 1, existing: 1, prefix: "➕"},
		{name: "substitute join is silent", minPlayers: 1, existing: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t, tc.minPlayers)
			sch := e.addSchedule(t, "s1", 2)
			v := e.addVoting(t, sch, "p1", voting.StateActive, saturdayEvening)
			for i := 0; i < tc.existing; i++ {
				e.answer(t, "p1", int64(10+i), voting.OptionPlaying)
			}
			_ = e.store.Votings().UpdateState(context.Background(), v.ID, voting.StateClosed)

			e.answer(t, "p1", 1, voting.OptionPlaying)
			msgs := e.messenger.sent()
			if tc.prefix == "" {
				if len(msgs) != 0 {
					t.Fatalf("expected no notice, got %v", msgs)
				}
				return
			}
			if len(msgs) != 1 || !strings.HasPrefix(msgs[0], tc.prefix) {
				t.Fatalf("expected notice starting with %q, got %v", tc.prefix, msgs)
			}
		})
	}
}

func TestJoinShortNoticeNamesCounts(t *testing.T) {
	e := newEnv(t, 3)
	sch := e.addSchedule(t, "s1", 2)
	e.addVoting(t, sch, "p1", voting.StateClosed, saturdayEvening)
	e.answer(t, "p1", 1, voting.OptionPlaying)
	msgs := e.messenger.sent()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "1 из 3") {
		t.Fatalf("expected short notice with counts, got %v", msgs)
	}
}

func TestUnknownPollIsIgnored(t *testing.T) {
	e := newEnv(t, 1)
	e.answer(t, "missing", 1, voting.OptionPlaying)
	if len(e.messenger.sent()) != 0 {
		t.Fatalf("expected no messages")
	}
}

func TestAnswerUpsertsProfile(t *testing.T) {
	e := newEnv(t, 1)
	sch := e.addSchedule(t, "s1", 2)
	e.addVoting(t, sch, "p1", voting.StateActive, saturdayEvening)
	e.answer(t, "p1", 77, voting.OptionPlaying)

	u, err := e.store.Users().GetByID(context.Background(), 77)
	if err != nil || u == nil {
		t.Fatalf("expected user to be stored: %v", err)
	}
	if u.FirstName != "P77" {
		t.Fatalf("unexpected profile %+v", u)
	}
}
