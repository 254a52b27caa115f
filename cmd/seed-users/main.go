// Seeds the demo accounts. Safe to run repeatedly; existing usernames are
// left untouched.
package main

import (
	"context"
	"log"

	"riddle-rush/internal/auth"
	"riddle-rush/internal/config"
	"riddle-rush/internal/db"
)

var demoUsers = []struct {
	username     string
	profileImage string
}{
	{"Mark", "user1"},
	{"Paul", "user2"},
	{"Sophie", "user3"},
	{"John", "user4"},
	{"Miriam", "user5"},
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store := db.NewStore(conn)
	ctx := context.Background()
	for _, demo := range demoUsers {
		hash, salt, err := auth.HashPassword("password")
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user := &db.User{
			Username:     demo.username,
			ProfileImage: demo.profileImage,
			Hash:         hash,
			Salt:         salt,
		}
		if err := store.CreateUser(ctx, user); err != nil {
			log.Fatalf("create user %s: %v", demo.username, err)
		}
		log.Printf("seeded user %s", demo.username)
	}
}
