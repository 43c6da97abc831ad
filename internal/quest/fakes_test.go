package quest

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/mkuznetsova/questbot/internal/domain"
)

// memStore is an in-memory stand-in for every storage contract, shared by
// the engine tests.
type memStore struct {
	teams    []domain.Team
	members  []domain.TeamMember
	tasks    []domain.Task
	subs     []domain.Submission
	state    domain.QuestState
	settings map[string]string
	admins   map[int64][]domain.ChatUser
	adminErr error
	nextID   int64
	now      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		state:    domain.QuestState{ID: 1},
		settings: map[string]string{},
		admins:   map[int64][]domain.ChatUser{},
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// tick advances the fake clock so submission order is deterministic.
func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Minute)
	return m.now
}

func (m *memStore) GetByChatID(_ context.Context, chatID int64) (*domain.Team, error) {
	for i := range m.teams {
		if m.teams[i].ChatID == chatID {
			t := m.teams[i]
			return &t, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (m *memStore) GetByID(_ context.Context, id int64) (*domain.Team, error) {
	for i := range m.teams {
		if m.teams[i].ID == id {
			t := m.teams[i]
			return &t, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (m *memStore) List(_ context.Context) ([]domain.Team, error) {
	var out []domain.Team
	for _, t := range m.teams {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, chatID int64, name string) (*domain.Team, error) {
	team := domain.Team{ID: m.id(), ChatID: chatID, Name: name, IsActive: true}
	m.teams = append(m.teams, team)
	return &team, nil
}

func (m *memStore) Rename(_ context.Context, id int64, name string) error {
	for i := range m.teams {
		if m.teams[i].ID == id {
			m.teams[i].Name = name
			return nil
		}
	}
	return domain.ErrTeamNotFound
}

func (m *memStore) Deactivate(_ context.Context, id int64) error {
	for i := range m.teams {
		if m.teams[i].ID == id {
			m.teams[i].IsActive = false
			return nil
		}
	}
	return domain.ErrTeamNotFound
}

// memMembers wraps memStore so one struct cannot accidentally satisfy two
// Create signatures.
type memMembers struct{ m *memStore }

func (s memMembers) Create(_ context.Context, member domain.TeamMember) (bool, error) {
	for _, existing := range s.m.members {
		if existing.TeamID == member.TeamID && existing.UserID == member.UserID {
			return false, nil
		}
	}
	member.ID = s.m.id()
	member.CreatedAt = s.m.now
	s.m.members = append(s.m.members, member)
	return true, nil
}

func (s memMembers) Get(_ context.Context, teamID, userID int64) (*domain.TeamMember, error) {
	for i := range s.m.members {
		if s.m.members[i].TeamID == teamID && s.m.members[i].UserID == userID {
			member := s.m.members[i]
			return &member, nil
		}
	}
	return nil, nil
}

func (s memMembers) ListByTeam(_ context.Context, teamID int64) ([]domain.TeamMember, error) {
	var out []domain.TeamMember
	for _, member := range s.m.members {
		if member.TeamID == teamID {
			out = append(out, member)
		}
	}
	return out, nil
}

type memTasks struct{ m *memStore }

func (s memTasks) GetByOrdinal(_ context.Context, ordinal int) (*domain.Task, error) {
	for i := range s.m.tasks {
		if s.m.tasks[i].Ordinal == ordinal {
			t := s.m.tasks[i]
			return &t, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (s memTasks) List(_ context.Context) ([]domain.Task, error) {
	out := append([]domain.Task(nil), s.m.tasks...)
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out, nil
}

type memSubs struct{ m *memStore }

func (s memSubs) Create(_ context.Context, sub domain.Submission) (*domain.Submission, error) {
	sub.ID = s.m.id()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.m.tick()
	}
	s.m.subs = append(s.m.subs, sub)
	return &sub, nil
}

func (s memSubs) LatestByTeam(_ context.Context, teamID int64) (map[int64]domain.Submission, error) {
	latest := make(map[int64]domain.Submission)
	for _, sub := range s.m.subs {
		if sub.TeamID != teamID {
			continue
		}
		cur, ok := latest[sub.TaskID]
		if !ok || sub.CreatedAt.After(cur.CreatedAt) ||
			(sub.CreatedAt.Equal(cur.CreatedAt) && sub.ID > cur.ID) {
			latest[sub.TaskID] = sub
		}
	}
	return latest, nil
}

type memState struct{ m *memStore }

func (s memState) Get(_ context.Context) (*domain.QuestState, error) {
	state := s.m.state
	return &state, nil
}

func (s memState) Activate(_ context.Context, now time.Time) (bool, error) {
	if s.m.state.IsActive {
		return false, nil
	}
	s.m.state.IsActive = true
	s.m.state.StartedAt = &now
	s.m.state.EndedAt = nil
	return true, nil
}

func (s memState) Deactivate(_ context.Context, now time.Time) (bool, error) {
	if !s.m.state.IsActive {
		return false, nil
	}
	s.m.state.IsActive = false
	s.m.state.EndedAt = &now
	return true, nil
}

type memSettings struct{ m *memStore }

func (s memSettings) Get(_ context.Context, key string) (string, error) {
	return s.m.settings[key], nil
}

type memAdmins struct{ m *memStore }

func (s memAdmins) ChatAdministrators(_ context.Context, chatID int64) ([]domain.ChatUser, error) {
	if s.m.adminErr != nil {
		return nil, s.m.adminErr
	}
	return s.m.admins[chatID], nil
}

var errBoom = errors.New("boom")

// fixture bundles the engine components over one shared store.
type fixture struct {
	store     *memStore
	roster    *Roster
	lifecycle *Lifecycle
	engine    *Engine
	score     *Aggregator
}

const testAdminChatID int64 = -100

func newFixture() *fixture {
	m := newMemStore()
	roster := NewRoster(m, memMembers{m}, memState{m}, memAdmins{m}, testAdminChatID)
	score := NewAggregator(m, memTasks{m}, memSubs{m})
	return &fixture{
		store:     m,
		roster:    roster,
		lifecycle: NewLifecycle(memState{m}, m, roster, "yes"),
		engine:    NewEngine(memState{m}, m, memTasks{m}, memSubs{m}, memSettings{m}, score),
		score:     score,
	}
}
