package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"riddle-rush/internal/db"
)

type memTxKey struct{}

// MemStore is an in-memory Store. The server falls back to it when no
// DATABASE_URL is configured, and tests use it for deterministic, isolated
// runs. Atomically holds the store lock for the whole callback, which
// serializes concurrent submissions the way the row lock does in Postgres;
// on error the pre-transaction state is restored.
type MemStore struct {
	mu           sync.Mutex
	nextRiddleID uint
	nextUserID   uint
	nextAnswerID uint
	nextEventID  uint
	riddles      map[uint]db.Riddle
	users        map[uint]db.User
	answers      []db.Answer
	events       []db.Event
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextRiddleID: 1,
		nextUserID:   1,
		nextAnswerID: 1,
		nextEventID:  1,
		riddles:      make(map[uint]db.Riddle),
		users:        make(map[uint]db.User),
	}
}

type memSnapshot struct {
	nextRiddleID uint
	nextUserID   uint
	nextAnswerID uint
	nextEventID  uint
	riddles      map[uint]db.Riddle
	users        map[uint]db.User
	answers      []db.Answer
	events       []db.Event
}

func (s *MemStore) snapshot() memSnapshot {
	snap := memSnapshot{
		nextRiddleID: s.nextRiddleID,
		nextUserID:   s.nextUserID,
		nextAnswerID: s.nextAnswerID,
		nextEventID:  s.nextEventID,
		riddles:      make(map[uint]db.Riddle, len(s.riddles)),
		users:        make(map[uint]db.User, len(s.users)),
		answers:      append([]db.Answer(nil), s.answers...),
		events:       append([]db.Event(nil), s.events...),
	}
	for id, riddle := range s.riddles {
		snap.riddles[id] = riddle
	}
	for id, user := range s.users {
		snap.users[id] = user
	}
	return snap
}

func (s *MemStore) restore(snap memSnapshot) {
	s.nextRiddleID = snap.nextRiddleID
	s.nextUserID = snap.nextUserID
	s.nextAnswerID = snap.nextAnswerID
	s.nextEventID = snap.nextEventID
	s.riddles = snap.riddles
	s.users = snap.users
	s.answers = snap.answers
	s.events = snap.events
}

func (s *MemStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// lock acquires the store lock unless the context is already inside an
// Atomically scope, which holds it.
func (s *MemStore) lock(ctx context.Context) func() {
	if ctx.Value(memTxKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemStore) CreateRiddle(ctx context.Context, riddle *db.Riddle) error {
	unlock := s.lock(ctx)
	defer unlock()
	riddle.ID = s.nextRiddleID
	s.nextRiddleID++
	riddle.CreatedAt = time.Now().UTC()
	riddle.UpdatedAt = riddle.CreatedAt
	stored := *riddle
	stored.Owner = db.User{}
	stored.Answers = nil
	s.riddles[riddle.ID] = stored
	return nil
}

func (s *MemStore) GetRiddle(ctx context.Context, id uint) (*db.Riddle, error) {
	unlock := s.lock(ctx)
	defer unlock()
	riddle, ok := s.riddles[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	riddle.Owner = s.users[riddle.OwnerID]
	return &riddle, nil
}

func (s *MemStore) GetRiddleForUpdate(ctx context.Context, id uint) (*db.Riddle, error) {
	return s.GetRiddle(ctx, id)
}

func (s *MemStore) ListRiddles(ctx context.Context) ([]db.Riddle, error) {
	unlock := s.lock(ctx)
	defer unlock()
	riddles := make([]db.Riddle, 0, len(s.riddles))
	for _, riddle := range s.riddles {
		riddle.Owner = s.users[riddle.OwnerID]
		riddles = append(riddles, riddle)
	}
	sort.Slice(riddles, func(i, j int) bool { return riddles[i].ID < riddles[j].ID })
	return riddles, nil
}

func (s *MemStore) ListRiddlesByOwner(ctx context.Context, ownerID uint) ([]db.Riddle, error) {
	all, err := s.ListRiddles(ctx)
	if err != nil {
		return nil, err
	}
	var riddles []db.Riddle
	for _, riddle := range all {
		if riddle.OwnerID == ownerID {
			riddles = append(riddles, riddle)
		}
	}
	return riddles, nil
}

func (s *MemStore) SetSolutionFound(ctx context.Context, riddleID uint) error {
	unlock := s.lock(ctx)
	defer unlock()
	riddle, ok := s.riddles[riddleID]
	if !ok {
		return db.ErrNotFound
	}
	riddle.SolutionFound = true
	riddle.UpdatedAt = time.Now().UTC()
	s.riddles[riddleID] = riddle
	return nil
}

func (s *MemStore) SetStartTime(ctx context.Context, riddleID uint, startMillis int64) error {
	unlock := s.lock(ctx)
	defer unlock()
	riddle, ok := s.riddles[riddleID]
	if !ok {
		return db.ErrNotFound
	}
	riddle.StartTime = &startMillis
	riddle.UpdatedAt = time.Now().UTC()
	s.riddles[riddleID] = riddle
	return nil
}

func (s *MemStore) AppendAnswer(ctx context.Context, answer *db.Answer) error {
	unlock := s.lock(ctx)
	defer unlock()
	answer.ID = s.nextAnswerID
	s.nextAnswerID++
	answer.CreatedAt = time.Now().UTC()
	stored := *answer
	stored.User = db.User{}
	s.answers = append(s.answers, stored)
	return nil
}

func (s *MemStore) ListAnswers(ctx context.Context, riddleID uint) ([]db.Answer, error) {
	unlock := s.lock(ctx)
	defer unlock()
	var answers []db.Answer
	for _, answer := range s.answers {
		if answer.RiddleID == riddleID {
			answer.User = s.users[answer.UserID]
			answers = append(answers, answer)
		}
	}
	return answers, nil
}

func (s *MemStore) CreateUser(ctx context.Context, user *db.User) error {
	unlock := s.lock(ctx)
	defer unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil
		}
	}
	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *MemStore) GetUser(ctx context.Context, id uint) (*db.User, error) {
	unlock := s.lock(ctx)
	defer unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &user, nil
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*db.User, error) {
	unlock := s.lock(ctx)
	defer unlock()
	for _, user := range s.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *MemStore) IncrementPoints(ctx context.Context, userID uint, points int) error {
	unlock := s.lock(ctx)
	defer unlock()
	user, ok := s.users[userID]
	if !ok {
		return db.ErrNotFound
	}
	user.Points += points
	user.UpdatedAt = time.Now().UTC()
	s.users[userID] = user
	return nil
}

func (s *MemStore) TopScores(ctx context.Context, limit int) ([]db.User, error) {
	unlock := s.lock(ctx)
	defer unlock()
	distinct := make(map[int]struct{})
	for _, user := range s.users {
		distinct[user.Points] = struct{}{}
	}
	values := make([]int, 0, len(distinct))
	for points := range distinct {
		values = append(values, points)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	if len(values) > limit {
		values = values[:limit]
	}
	keep := make(map[int]struct{}, len(values))
	for _, points := range values {
		keep[points] = struct{}{}
	}
	var users []db.User
	for _, user := range s.users {
		if _, ok := keep[user.Points]; ok {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (s *MemStore) AppendEvent(ctx context.Context, event *db.Event) error {
	unlock := s.lock(ctx)
	defer unlock()
	event.ID = s.nextEventID
	s.nextEventID++
	event.CreatedAt = time.Now().UTC()
	s.events = append(s.events, *event)
	return nil
}
