package filestore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/matedu/matedu-go/core"
)

const (
	tokenFile = "token"
	// earlier client versions cached the whole user profile next to the token
	legacyUserFile = "user.json"
)

// Store keeps the session token in a file so it survives restarts. Get
// re-reads the file on every call: another process (or another Store on the
// same directory) rewriting or removing it is always observed.
type Store struct {
	dir string
}

var _ core.TokenStore = (*Store)(nil)

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "creating storage dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Set(token string) error {
	path := filepath.Join(s.dir, tokenFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "writing token")
	}
	// rename so a crash mid-write never leaves a truncated token behind
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "persisting token")
	}
	return nil
}

func (s *Store) Get() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "reading token")
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, legacyUserFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", name)
		}
	}
	return nil
}
