package word

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// dbWord is the row shape of the words table. Senses are kept as a JSON
// column since the diary is always read and written as a whole.
type dbWord struct {
	ID           string `db:"id"`
	Word         string `db:"word"`
	Phonetic     string `db:"phonetic"`
	Senses       []byte `db:"senses"`
	AddedAt      int64  `db:"added_at"`
	LastRecallAt *int64 `db:"last_recall_at"`
	RecallCount  int    `db:"recall_count"`
	CorrectCount int    `db:"correct_count"`
}

// DBStore implements Store on MySQL for diaries too large for a single file.
type DBStore struct {
	db *sqlx.DB
}

func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) ReadAll(ctx context.Context) ([]Word, error) {
	var rows []dbWord
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM words ORDER BY added_at DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(words) > %w", err)
	}

	words := make([]Word, 0, len(rows))
	for _, row := range rows {
		var senses []Sense
		if len(row.Senses) > 0 {
			if err := json.Unmarshal(row.Senses, &senses); err != nil {
				return nil, fmt.Errorf("json.Unmarshal(senses of %s) > %w", row.ID, err)
			}
		}
		words = append(words, Word{
			ID:           row.ID,
			Word:         row.Word,
			Phonetic:     row.Phonetic,
			Senses:       senses,
			AddedAt:      row.AddedAt,
			LastRecallAt: row.LastRecallAt,
			RecallCount:  row.RecallCount,
			CorrectCount: row.CorrectCount,
		})
	}
	return words, nil
}

// WriteAll replaces the stored diary with the given words in one transaction.
func (s *DBStore) WriteAll(ctx context.Context, words []Word) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM words"); err != nil {
		return fmt.Errorf("tx.ExecContext(delete words) > %w", err)
	}
	for _, w := range words {
		senses, err := json.Marshal(w.Senses)
		if err != nil {
			return fmt.Errorf("json.Marshal(senses of %s) > %w", w.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO words (id, word, phonetic, senses, added_at, last_recall_at, recall_count, correct_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			w.ID, w.Word, w.Phonetic, senses, w.AddedAt, w.LastRecallAt, w.RecallCount, w.CorrectCount); err != nil {
			return fmt.Errorf("tx.ExecContext(insert word %s) > %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

func (s *DBStore) DeleteByID(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM words WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete word) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("word %s not found", id)
	}
	return nil
}
