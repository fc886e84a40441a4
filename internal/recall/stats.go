package recall

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/worddiary/worddiary/internal/word"
)

// StatsUpdater mutates a word's recall counters after each answer and
// writes the diary back through the store.
type StatsUpdater struct {
	words word.Store
	now   func() time.Time
}

func NewStatsUpdater(words word.Store, now func() time.Time) *StatsUpdater {
	return &StatsUpdater{words: words, now: now}
}

// Record updates the counters of the given word. An unknown ID means the
// word was deleted after the session was built; the update is logged and
// skipped rather than failing the answer.
func (u *StatsUpdater) Record(ctx context.Context, wordID string, correct bool) error {
	words, err := u.words.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("words.ReadAll() > %w", err)
	}

	index := -1
	for i, w := range words {
		if w.ID == wordID {
			index = i
			break
		}
	}
	if index < 0 {
		slog.Warn("skipping recall stats for unknown word", "word_id", wordID)
		return nil
	}

	nowMs := u.now().UnixMilli()
	words[index].LastRecallAt = &nowMs
	words[index].RecallCount++
	if correct {
		words[index].CorrectCount++
	}

	if err := u.words.WriteAll(ctx, words); err != nil {
		return fmt.Errorf("words.WriteAll() > %w", err)
	}
	return nil
}
