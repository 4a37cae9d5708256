package sqlitestore

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/matedu/matedu-go/core"
)

const (
	tokenKey = "token"
	// earlier client versions cached the whole user profile under this key
	legacyUserKey = "user"
)

const schema = `
CREATE TABLE IF NOT EXISTS client_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Store keeps the session token in a local SQLite database. Every Get is a
// fresh query: concurrent writers on the same database file are always
// observed.
type Store struct {
	db *sqlx.DB
}

var _ core.TokenStore = (*Store)(nil)

func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening client state db %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "initializing client state schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Set(token string) error {
	_, err := s.db.Exec(
		`INSERT INTO client_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		tokenKey, token,
	)
	return errors.Wrap(err, "persisting token")
}

func (s *Store) Get() (string, error) {
	var token string
	err := s.db.Get(&token, `SELECT value FROM client_state WHERE key = ?`, tokenKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", errors.Wrap(err, "reading token")
	}
	return token, nil
}

func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM client_state WHERE key IN (?, ?)`, tokenKey, legacyUserKey)
	return errors.Wrap(err, "clearing client state")
}

func (s *Store) Close() error {
	return s.db.Close()
}
