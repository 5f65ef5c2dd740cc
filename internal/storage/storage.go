package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/misterclayt0n/tabata/internal/config"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

var (
	// ErrNoDatabase means neither the environment nor the config file names a database.
	ErrNoDatabase = errors.New("no database configured (set TURSO_DATABASE_URL or [database] connection_string)")
	ErrNotFound   = errors.New("not found")
)

type Storage struct {
	DB *sql.DB
}

// DatabaseURL resolves the connection string: environment (after loading an
// optional .env file) first, then the config file.
func DatabaseURL(cfg *config.Config) (string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	dbURL := os.Getenv("TURSO_DATABASE_URL")
	token := os.Getenv("TURSO_AUTH_TOKEN")
	if dbURL == "" && cfg != nil {
		dbURL = cfg.DB.ConnectionString
	}
	if token == "" && cfg != nil {
		token = cfg.DB.AuthToken
	}
	if dbURL == "" {
		return "", ErrNoDatabase
	}
	return withAuthToken(dbURL, token)
}

func withAuthToken(dbURL, token string) (string, error) {
	if token == "" {
		return dbURL, nil
	}
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}
	q := u.Query()
	if q.Get("authToken") == "" {
		q.Set("authToken", token)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// NewStorage opens the configured database and makes sure the schema exists.
func NewStorage(cfg *config.Config) (*Storage, error) {
	dbURL, err := DatabaseURL(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := InitializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func InitializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS workouts (
            id TEXT PRIMARY KEY,
            mode TEXT NOT NULL,
            preset_name TEXT,
            prep INTEGER NOT NULL,
            work INTEGER NOT NULL,
            rest INTEGER NOT NULL,
            rounds INTEGER NOT NULL,
            cycles INTEGER NOT NULL,
            longrest INTEGER NOT NULL,
            start_time TEXT NOT NULL,
            end_time TEXT,
            elapsed_seconds INTEGER NOT NULL,
            total_seconds INTEGER NOT NULL,
            completed INTEGER NOT NULL,
            notes TEXT
        );

        CREATE INDEX IF NOT EXISTS workouts_start_time ON workouts(start_time);

        CREATE TABLE IF NOT EXISTS presets (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            description TEXT,
            mode TEXT NOT NULL,
            prep INTEGER NOT NULL,
            work INTEGER NOT NULL,
            rest INTEGER NOT NULL,
            rounds INTEGER NOT NULL,
            cycles INTEGER NOT NULL,
            longrest INTEGER NOT NULL,
            created_at TEXT NOT NULL
        );
    `)
	return err
}
