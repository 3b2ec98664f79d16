package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func Connect() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		fmt.Println("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

// EnsureSchema creates the watchlist table if it does not exist. The
// watchlist is the only thing this service persists.
func EnsureSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS watchlist (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			added_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, symbol)
		)
	`)
	return err
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
