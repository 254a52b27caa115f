package game

import (
	"context"
	"errors"
	"testing"

	"riddle-rush/internal/db"
)

var errTest = errors.New("boom")

func TestMemStoreDuplicateUsernameIgnored(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	if err := store.CreateUser(ctx, &db.User{Username: "Mark"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.CreateUser(ctx, &db.User{Username: "Mark"}); err != nil {
		t.Fatalf("duplicate create: %v", err)
	}
	users, err := store.TopScores(ctx, 3)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected a single Mark, got %d users", len(users))
	}
}

func TestMemStoreTopScoresDistinctValues(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	seed := map[string]int{
		"Mark":   5,
		"Paul":   5,
		"Sophie": 3,
		"John":   2,
		"Miriam": 1,
	}
	for username, points := range seed {
		if err := store.CreateUser(ctx, &db.User{Username: username}); err != nil {
			t.Fatalf("create %s: %v", username, err)
		}
		user, err := store.GetUserByUsername(ctx, username)
		if err != nil {
			t.Fatalf("lookup %s: %v", username, err)
		}
		if err := store.IncrementPoints(ctx, user.ID, points); err != nil {
			t.Fatalf("points %s: %v", username, err)
		}
	}

	users, err := store.TopScores(ctx, 3)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	// Top three distinct values are 5, 3 and 2; both users on 5 qualify.
	if len(users) != 4 {
		t.Fatalf("expected 4 users across the top 3 scores, got %d", len(users))
	}
	if users[0].Points != 5 || users[len(users)-1].Points != 2 {
		t.Fatalf("unexpected ordering: %+v", users)
	}
}

func TestMemStoreAtomicRollback(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	if err := store.CreateUser(ctx, &db.User{Username: "Mark"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	failed := errTest
	err := store.Atomically(ctx, func(ctx context.Context) error {
		if err := store.IncrementPoints(ctx, 1, 10); err != nil {
			return err
		}
		return failed
	})
	if err != failed {
		t.Fatalf("expected sentinel error back, got %v", err)
	}
	user, err := store.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Points != 0 {
		t.Fatalf("expected rollback, got %d points", user.Points)
	}
}
