package word

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:generate mockgen -source=store.go -destination=../mocks/word/mock_store.go -package=mock_word Store

// Store is the durable mapping from word ID to diary entry.
type Store interface {
	ReadAll(ctx context.Context) ([]Word, error)
	WriteAll(ctx context.Context, words []Word) error
	DeleteByID(ctx context.Context, id string) error
}

// diaryFile is the on-disk shape of the YAML diary.
type diaryFile struct {
	Words []Word `yaml:"words"`
}

// DiaryStore persists the whole diary in a single YAML file.
// A missing file reads as an empty diary.
type DiaryStore struct {
	path string
}

func NewDiaryStore(path string) *DiaryStore {
	return &DiaryStore{path: path}
}

func (s *DiaryStore) ReadAll(_ context.Context) ([]Word, error) {
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

	var diary diaryFile
	if err := yaml.NewDecoder(file).Decode(&diary); err != nil {
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return diary.Words, nil
}

func (s *DiaryStore) WriteAll(_ context.Context, words []Word) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", s.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewEncoder(file).Encode(diaryFile{Words: words}); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	return nil
}

func (s *DiaryStore) DeleteByID(ctx context.Context, id string) error {
	words, err := s.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("s.ReadAll() > %w", err)
	}

	kept := make([]Word, 0, len(words))
	for _, w := range words {
		if w.ID == id {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == len(words) {
		return fmt.Errorf("word %s not found", id)
	}
	return s.WriteAll(ctx, kept)
}
