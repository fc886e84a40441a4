package recall

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:generate mockgen -source=session_store.go -destination=../mocks/recall/mock_session_store.go -package=mock_recall SessionStore

// SessionStore persists the single active session.
type SessionStore interface {
	// Read returns the stored session, or (nil, nil) when none exists.
	Read(ctx context.Context) (*Session, error)
	Write(ctx context.Context, session *Session) error
}

// FileSessionStore keeps the session in one YAML file. Writing a new day's
// session overwrites the previous one.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Read(_ context.Context) (*Session, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", s.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var session Session
	if err := yaml.NewDecoder(file).Decode(&session); err != nil {
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return &session, nil
}

func (s *FileSessionStore) Write(_ context.Context, session *Session) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", s.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewEncoder(file).Encode(session); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	return nil
}
