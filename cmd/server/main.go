package main

import (
	"net/http"
	"os"

	"riddle-rush/internal/config"
	"riddle-rush/internal/db"
	"riddle-rush/internal/logger"
	"riddle-rush/internal/server"

	"gorm.io/gorm"
)

func main() {
	log := logger.NewLogger("riddle-rush")
	if err := config.LoadDotEnv(".env"); err != nil {
		log.WithError(err).Warn("failed to load .env")
	}
	cfg := config.Load()

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		var err error
		conn, err = db.Open(cfg)
		if err != nil {
			log.WithError(err).Fatal("database connection failed")
		}
		if err := db.Migrate(conn); err != nil {
			log.WithError(err).Fatal("database migration failed")
		}
		log.Info("database migration complete")
	} else {
		log.Warn("DATABASE_URL not set, riddles will not survive a restart")
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	srv := server.New(conn, cfg)
	log.WithField("addr", addr).Info("riddle-rush server listening")
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}
