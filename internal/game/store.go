package game

import (
	"context"

	"riddle-rush/internal/db"
)

// Store is the persistence boundary the game core runs against. Atomically
// executes its callback as one atomic unit: store calls made with the
// callback's context join the same transaction, and an error rolls back
// everything. The Postgres implementation lives in internal/db; MemStore is
// the in-memory one.
type Store interface {
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error

	CreateRiddle(ctx context.Context, riddle *db.Riddle) error
	GetRiddle(ctx context.Context, id uint) (*db.Riddle, error)
	GetRiddleForUpdate(ctx context.Context, id uint) (*db.Riddle, error)
	ListRiddles(ctx context.Context) ([]db.Riddle, error)
	ListRiddlesByOwner(ctx context.Context, ownerID uint) ([]db.Riddle, error)
	SetSolutionFound(ctx context.Context, riddleID uint) error
	SetStartTime(ctx context.Context, riddleID uint, startMillis int64) error

	AppendAnswer(ctx context.Context, answer *db.Answer) error
	ListAnswers(ctx context.Context, riddleID uint) ([]db.Answer, error)

	CreateUser(ctx context.Context, user *db.User) error
	GetUser(ctx context.Context, id uint) (*db.User, error)
	GetUserByUsername(ctx context.Context, username string) (*db.User, error)
	IncrementPoints(ctx context.Context, userID uint, points int) error
	TopScores(ctx context.Context, limit int) ([]db.User, error)

	AppendEvent(ctx context.Context, event *db.Event) error
}
