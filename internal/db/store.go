package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by lookups for rows that do not exist.
var ErrNotFound = errors.New("record not found")

type txKey struct{}

// Store is the Postgres-backed store. Atomically runs its callback inside a
// database transaction; every store method called with the callback's context
// is routed through that transaction, so a rollback undoes all of them.
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

func (s *Store) handle(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.conn.WithContext(ctx)
}

func (s *Store) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *Store) CreateRiddle(ctx context.Context, riddle *Riddle) error {
	return s.handle(ctx).Omit("Owner", "Answers").Create(riddle).Error
}

func (s *Store) GetRiddle(ctx context.Context, id uint) (*Riddle, error) {
	var riddle Riddle
	err := s.handle(ctx).Preload("Owner").First(&riddle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &riddle, nil
}

// GetRiddleForUpdate re-reads a riddle with a row lock. Two concurrent
// submissions against the same riddle serialize on this read.
func (s *Store) GetRiddleForUpdate(ctx context.Context, id uint) (*Riddle, error) {
	var riddle Riddle
	err := s.handle(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&riddle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &riddle, nil
}

func (s *Store) ListRiddles(ctx context.Context) ([]Riddle, error) {
	var riddles []Riddle
	err := s.handle(ctx).Preload("Owner").Order("id ASC").Find(&riddles).Error
	return riddles, err
}

func (s *Store) ListRiddlesByOwner(ctx context.Context, ownerID uint) ([]Riddle, error) {
	var riddles []Riddle
	err := s.handle(ctx).Preload("Owner").Where("owner_id = ?", ownerID).Order("id ASC").Find(&riddles).Error
	return riddles, err
}

func (s *Store) SetSolutionFound(ctx context.Context, riddleID uint) error {
	return s.handle(ctx).Model(&Riddle{}).Where("id = ?", riddleID).Update("solution_found", true).Error
}

func (s *Store) SetStartTime(ctx context.Context, riddleID uint, startMillis int64) error {
	return s.handle(ctx).Model(&Riddle{}).Where("id = ?", riddleID).Update("start_time", startMillis).Error
}

func (s *Store) AppendAnswer(ctx context.Context, answer *Answer) error {
	return s.handle(ctx).Omit("User").Create(answer).Error
}

func (s *Store) ListAnswers(ctx context.Context, riddleID uint) ([]Answer, error) {
	var answers []Answer
	err := s.handle(ctx).Preload("User").
		Where("riddle_id = ?", riddleID).
		Order("created_at ASC, id ASC").
		Find(&answers).Error
	return answers, err
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	return s.handle(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error
}

func (s *Store) GetUser(ctx context.Context, id uint) (*User, error) {
	var user User
	err := s.handle(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.handle(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) IncrementPoints(ctx context.Context, userID uint, points int) error {
	return s.handle(ctx).Model(&User{}).Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", points)).Error
}

// TopScores returns the users holding the top distinct point values.
func (s *Store) TopScores(ctx context.Context, limit int) ([]User, error) {
	var users []User
	sub := s.handle(ctx).Model(&User{}).Distinct("points").Order("points DESC").Limit(limit)
	err := s.handle(ctx).Model(&User{}).
		Where("points IN (?)", sub).
		Order("points DESC").
		Find(&users).Error
	return users, err
}

func (s *Store) AppendEvent(ctx context.Context, event *Event) error {
	return s.handle(ctx).Create(event).Error
}
