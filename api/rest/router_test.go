package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/VolleyLabs/VolleyballRating-sub000/api/telegram"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/rating"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
	"github.com/VolleyLabs/VolleyballRating-sub000/storage/adapters/memory"
)

const testSecret = "s3cret"

type fakeLifecycle struct {
	opened   []voting.Voting
	closed   int
	startErr error
	calls    []time.Time
}

func (f *fakeLifecycle) StartVotings(_ context.Context, now time.Time) ([]voting.Voting, error) {
	f.calls = append(f.calls, now)
	return f.opened, f.startErr
}

func (f *fakeLifecycle) NotifyAndClose(_ context.Context, now time.Time) (int, error) {
	f.calls = append(f.calls, now)
	return f.closed, nil
}

type recordingUpdates struct {
	updates []*telegram.Update
}

func (r *recordingUpdates) HandleUpdate(_ context.Context, u *telegram.Update) {
	r.updates = append(r.updates, u)
}

type testEnv struct {
	router    *gin.Engine
	store     *memory.Store
	lifecycle *fakeLifecycle
	updates   *recordingUpdates
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	env := &testEnv{
		store:     store,
		lifecycle: &fakeLifecycle{},
		updates:   &recordingUpdates{},
		now:       time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
	}
	users := user.NewUserService(store.Users())
	env.router = NewRouter(Deps{
		Lifecycle:  env.lifecycle,
		Updates:    env.updates,
		Ratings:    rating.NewRatingService(store.Votes(), users, nil),
		Locations:  location.NewService(store.Locations()),
		Schedules:  schedule.NewScheduleService(store.Schedules()),
		CronSecret: testSecret,
		Now:        func() time.Time { return env.now },
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testSecret)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/healthz", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCronRequiresSecret(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/cron/start-voting", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if len(env.lifecycle.calls) != 0 {
		t.Fatalf("lifecycle must not be called without secret")
	}
}

func TestStartVotingReturnsOpenedIDs(t *testing.T) {
	env := newTestEnv(t)
	env.lifecycle.opened = []voting.Voting{{ID: "v1"}, {ID: "v2"}}

	w := env.do(t, http.MethodPost, "/cron/start-voting", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Opened []string `json:"opened"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Opened) != 2 || resp.Opened[0] != "v1" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(env.lifecycle.calls) != 1 || !env.lifecycle.calls[0].Equal(env.now) {
		t.Fatalf("expected lifecycle called with router clock, got %v", env.lifecycle.calls)
	}
}

func TestStartVotingReportsFailure(t *testing.T) {
	env := newTestEnv(t)
	env.lifecycle.startErr = errors.New("telegram down")

	w := env.do(t, http.MethodPost, "/cron/start-voting", nil, true)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCloseVoting(t *testing.T) {
	env := newTestEnv(t)
	env.lifecycle.closed = 3

	w := env.do(t, http.MethodPost, "/cron/close-voting", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Closed int `json:"closed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Closed != 3 {
		t.Fatalf("expected 3 closed, got %d", resp.Closed)
	}
}

func TestWebhookDispatchesPollAnswer(t *testing.T) {
	env := newTestEnv(t)
	payload := `{"update_id":1,"poll_answer":{"poll_id":"p1","user":{"id":42,"first_name":"Ann"},"option_ids":[0]}}`

	w := env.do(t, http.MethodPost, "/telegram/webhook", payload, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(env.updates.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(env.updates.updates))
	}
	pa := env.updates.updates[0].PollAnswer
	if pa == nil || pa.PollID != "p1" || pa.User.ID != 42 || !pa.VotedYes() {
		t.Fatalf("unexpected poll answer %+v", pa)
	}
}

func TestWebhookBadPayloadStillOK(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/telegram/webhook", "{not json", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(env.updates.updates) != 0 {
		t.Fatalf("bad payload must not be dispatched")
	}
}

func TestRatingsAndExport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, u := range []user.User{{ID: 1, FirstName: "Ann"}, {ID: 2, FirstName: "Bob"}} {
		if err := env.store.Users().Save(ctx, &u); err != nil {
			t.Fatalf("save user: %v", err)
		}
	}

	winner := int64(1)
	w := env.do(t, http.MethodPost, "/api/votes", map[string]any{
		"voter_id": 3, "player_a": 1, "player_b": 2, "winner_id": winner,
	}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/api/ratings", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var ratings []rating.PlayerRating
	if err := json.Unmarshal(w.Body.Bytes(), &ratings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ratings) != 2 || ratings[0].ID != 1 || ratings[0].Rating <= ratings[1].Rating {
		t.Fatalf("unexpected ratings %+v", ratings)
	}

	w = env.do(t, http.MethodGet, "/api/ratings/export", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer func() { _ = f.Close() }()
	name, err := f.GetCellValue(ratingsSheet, "C2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if name != "Ann" {
		t.Fatalf("expected leader Ann, got %q", name)
	}
}

func TestRecordVoteValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{name: "missing player", body: map[string]any{"voter_id": 1, "player_a": 2}},
		{name: "same player", body: map[string]any{"voter_id": 1, "player_a": 2, "player_b": 2}},
		{name: "winner outside pair", body: map[string]any{"voter_id": 1, "player_a": 2, "player_b": 3, "winner_id": 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/votes", tc.body, true)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestLocationsCreateAndList(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/locations", map[string]any{"name": "Зал", "address": "Ленина 1"}, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/locations", map[string]any{"name": "Зал", "address": "Ленина 1"}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/api/locations", nil, false)
	var list []locationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Зал" || list[0].ID == "" {
		t.Fatalf("unexpected locations %+v", list)
	}
}

func TestScheduleCreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/schedules", map[string]any{
		"day_of_week":            "wednesday",
		"time":                   "19:00",
		"duration_minutes":       120,
		"voting_in_advance_days": 2,
		"voting_time":            "10:00",
		"players_count":          12,
	}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created scheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.DayOfWeek != "WEDNESDAY" || created.Time != "19:00:00" || created.State != "ACTIVE" {
		t.Fatalf("unexpected schedule %+v", created)
	}

	w = env.do(t, http.MethodPut, "/api/schedules/"+created.ID, map[string]any{"state": "INACTIVE", "players_count": 14}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated scheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.State != "INACTIVE" || updated.PlayersCount != 14 || updated.DurationMinutes != 120 {
		t.Fatalf("unexpected update %+v", updated)
	}

	w = env.do(t, http.MethodPut, "/api/schedules/missing", map[string]any{"players_count": 5}, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = env.do(t, http.MethodPut, "/api/schedules/"+created.ID, map[string]any{"players_count": 0}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestScheduleCreateRejectsBadDay(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/schedules", map[string]any{
		"day_of_week":   "someday",
		"time":          "19:00",
		"voting_time":   "10:00",
		"players_count": 12,
	}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
