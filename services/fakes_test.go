package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/repositories"
	"github.com/Dosada05/fencing-tournament/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore backs every fake repository so cross-entity checks behave like the database.
type memStore struct {
	mu          sync.Mutex
	nextID      int
	tournaments map[int]models.Tournament
	events      map[int]models.Event
	stages      map[int]models.KnockoutStage
	players     map[int]models.Player
	ranks       map[int]models.PlayerRank
	users       map[int]models.User

	txCalls int
	failTx  error
}

func newMemStore() *memStore {
	return &memStore{
		tournaments: map[int]models.Tournament{},
		events:      map[int]models.Event{},
		stages:      map[int]models.KnockoutStage{},
		players:     map[int]models.Player{},
		ranks:       map[int]models.PlayerRank{},
		users:       map[int]models.User{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

// WithinTx runs fn without real isolation; failTx simulates a failing commit.
func (m *memStore) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	m.mu.Lock()
	m.txCalls++
	failure := m.failTx
	m.mu.Unlock()

	if err := fn(nil); err != nil {
		return err
	}
	return failure
}

type fakeTournamentRepo struct{ m *memStore }

func (r fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t.ID = r.m.id()
	t.CreatedAt = time.Now().UTC()
	r.m.tournaments[t.ID] = *t
	return nil
}

func (r fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r fakeTournamentRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	_, ok := r.m.tournaments[id]
	return ok, nil
}

func (r fakeTournamentRepo) List(ctx context.Context) ([]models.Tournament, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.m.tournaments))
	for _, t := range r.m.tournaments {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeTournamentRepo) ListByDate(ctx context.Context, day time.Time) ([]models.Tournament, error) {
	all, _ := r.List(ctx)
	out := make([]models.Tournament, 0)
	for _, t := range all {
		if t.IsHeldOn(day) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.m.tournaments[t.ID] = *t
	return nil
}

func (r fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.tournaments, id)
	for eid, e := range r.m.events {
		if e.TournamentID == id {
			r.m.deleteEventLocked(eid)
		}
	}
	return nil
}

func (m *memStore) deleteEventLocked(eventID int) {
	delete(m.events, eventID)
	for sid, s := range m.stages {
		if s.EventID == eventID {
			delete(m.stages, sid)
		}
	}
	for rid, pr := range m.ranks {
		if pr.EventID == eventID {
			delete(m.ranks, rid)
		}
	}
}

type fakeEventRepo struct{ m *memStore }

func (r fakeEventRepo) Create(ctx context.Context, e *models.Event) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tournaments[e.TournamentID]; !ok {
		return repositories.ErrEventTournamentInvalid
	}
	e.ID = r.m.id()
	stored := *e
	stored.Tournament, stored.Rankings, stored.KnockoutStages = nil, nil, nil
	r.m.events[e.ID] = stored
	return nil
}

func (r fakeEventRepo) GetByID(ctx context.Context, id int) (*models.Event, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	return &e, nil
}

func (r fakeEventRepo) ListByTournamentID(ctx context.Context, tournamentID int) ([]models.Event, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Event, 0)
	for _, e := range r.m.events {
		if e.TournamentID == tournamentID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeEventRepo) Update(ctx context.Context, exec repositories.SQLExecutor, e *models.Event) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.events[e.ID]
	if !ok {
		return repositories.ErrEventNotFound
	}
	stored.Gender, stored.Weapon = e.Gender, e.Weapon
	stored.StartDate, stored.EndDate = e.StartDate, e.EndDate
	r.m.events[e.ID] = stored
	return nil
}

func (r fakeEventRepo) DeleteByTournamentIDAndID(ctx context.Context, tournamentID, id int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if e, ok := r.m.events[id]; ok && e.TournamentID == tournamentID {
		r.m.deleteEventLocked(id)
	}
	return nil
}

type fakeStageRepo struct{ m *memStore }

func (r fakeStageRepo) Create(ctx context.Context, exec repositories.SQLExecutor, s *models.KnockoutStage) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.events[s.EventID]; !ok {
		return repositories.ErrKnockoutStageEventInvalid
	}
	s.ID = r.m.id()
	s.CreatedAt = time.Now().UTC()
	r.m.stages[s.ID] = *s
	return nil
}

func (r fakeStageRepo) GetByID(ctx context.Context, id int) (*models.KnockoutStage, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.stages[id]
	if !ok {
		return nil, repositories.ErrKnockoutStageNotFound
	}
	return &s, nil
}

func (r fakeStageRepo) GetByEventIDAndID(ctx context.Context, eventID, id int) (*models.KnockoutStage, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.EventID != eventID {
		return nil, repositories.ErrKnockoutStageNotFound
	}
	return s, nil
}

func (r fakeStageRepo) ListByEventID(ctx context.Context, eventID int) ([]models.KnockoutStage, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.KnockoutStage, 0)
	for _, s := range r.m.stages {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeStageRepo) Delete(ctx context.Context, eventID, id int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.stages[id]
	if !ok || s.EventID != eventID {
		return repositories.ErrKnockoutStageNotFound
	}
	delete(r.m.stages, id)
	return nil
}

func (r fakeStageRepo) DeleteByEventIDExcept(ctx context.Context, exec repositories.SQLExecutor, eventID int, keepIDs []int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	keep := make(map[int]bool, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = true
	}
	for id, s := range r.m.stages {
		if s.EventID == eventID && !keep[id] {
			delete(r.m.stages, id)
		}
	}
	return nil
}

type fakePlayerRepo struct{ m *memStore }

func (r fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.players {
		if existing.Username == p.Username {
			return repositories.ErrPlayerUsernameConflict
		}
	}
	p.ID = r.m.id()
	p.CreatedAt = time.Now().UTC()
	r.m.players[p.ID] = *p
	return nil
}

func (r fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (r fakePlayerRepo) GetByUsername(ctx context.Context, username string) (*models.Player, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.players {
		if p.Username == username {
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r fakePlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Player, 0, len(r.m.players))
	for _, p := range r.m.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r fakePlayerRepo) Update(ctx context.Context, p *models.Player) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.players[p.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	for id, existing := range r.m.players {
		if id != p.ID && existing.Username == p.Username {
			return repositories.ErrPlayerUsernameConflict
		}
	}
	stored.Username, stored.Email = p.Username, p.Email
	r.m.players[p.ID] = stored
	return nil
}

func (r fakePlayerRepo) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	stored.PhotoKey = photoKey
	r.m.players[id] = stored
	return nil
}

func (r fakePlayerRepo) Delete(ctx context.Context, id int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.m.players, id)
	for rid, pr := range r.m.ranks {
		if pr.PlayerID == id {
			delete(r.m.ranks, rid)
		}
	}
	return nil
}

type fakeRankRepo struct{ m *memStore }

func (r fakeRankRepo) Create(ctx context.Context, exec repositories.SQLExecutor, pr *models.PlayerRank) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	_, eventOK := r.m.events[pr.EventID]
	_, playerOK := r.m.players[pr.PlayerID]
	if !eventOK || !playerOK {
		return repositories.ErrPlayerRankReference
	}
	for _, existing := range r.m.ranks {
		if existing.EventID == pr.EventID && existing.PlayerID == pr.PlayerID {
			return repositories.ErrPlayerRankConflict
		}
	}
	pr.ID = r.m.id()
	r.m.ranks[pr.ID] = *pr
	return nil
}

func (r fakeRankRepo) GetByEventIDAndPlayerID(ctx context.Context, eventID, playerID int) (*models.PlayerRank, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, pr := range r.m.ranks {
		if pr.EventID == eventID && pr.PlayerID == playerID {
			p := r.m.players[playerID]
			pr.Player = &p
			return &pr, nil
		}
	}
	return nil, repositories.ErrPlayerRankNotFound
}

func (r fakeRankRepo) ListByEventID(ctx context.Context, eventID int) ([]models.PlayerRank, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.PlayerRank, 0)
	for _, pr := range r.m.ranks {
		if pr.EventID == eventID {
			p := r.m.players[pr.PlayerID]
			pr.Player = &p
			out = append(out, pr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r fakeRankRepo) UpdateScore(ctx context.Context, eventID, playerID, score int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, pr := range r.m.ranks {
		if pr.EventID == eventID && pr.PlayerID == playerID {
			pr.Score = score
			r.m.ranks[id] = pr
			return nil
		}
	}
	return repositories.ErrPlayerRankNotFound
}

func (r fakeRankRepo) Delete(ctx context.Context, eventID, playerID int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, pr := range r.m.ranks {
		if pr.EventID == eventID && pr.PlayerID == playerID {
			delete(r.m.ranks, id)
			return nil
		}
	}
	return repositories.ErrPlayerRankNotFound
}

type fakeUserRepo struct{ m *memStore }

func (r fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Username == u.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	u.ID = r.m.id()
	u.CreatedAt = time.Now().UTC()
	r.m.users[u.ID] = *u
	return nil
}

func (r fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeUserRepo) UpdateRole(ctx context.Context, id int, role models.UserRole) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	r.m.users[id] = u
	return nil
}

func (r fakeUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.m.users[id] = u
	return nil
}

// fakeUploader keeps uploaded objects in memory.
type fakeUploader struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string]string{}}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = string(data)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

// recordingPublisher captures rankings snapshots pushed by the event service.
type recordingPublisher struct {
	mu        sync.Mutex
	snapshots map[int][][]models.PlayerRank
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{snapshots: map[int][][]models.PlayerRank{}}
}

func (p *recordingPublisher) PublishRankings(eventID int, rankings []models.PlayerRank) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots[eventID] = append(p.snapshots[eventID], rankings)
}

func (p *recordingPublisher) last(eventID int) ([]models.PlayerRank, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.snapshots[eventID]
	if len(s) == 0 {
		return nil, false
	}
	return s[len(s)-1], true
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
