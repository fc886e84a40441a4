// Package recall implements the daily recall core: word selection,
// question generation, the session state machine, and mastery updates.
package recall

import (
	"math/rand"
	"sort"
	"time"

	"github.com/worddiary/worddiary/internal/word"
)

// DailyRecallCount is the default upper bound of words in one day's session.
const DailyRecallCount = 10

const dayMs = 24 * 60 * 60 * 1000

// Selector picks the daily working set from the full diary.
// The clock and random source are injected so tests are deterministic.
type Selector struct {
	count int
	now   func() time.Time
	rand  *rand.Rand
}

func NewSelector(count int, now func() time.Time, rnd *rand.Rand) *Selector {
	if count <= 0 {
		count = DailyRecallCount
	}
	return &Selector{count: count, now: now, rand: rnd}
}

// Score computes the review priority of a word at the given time.
// Never-recalled words dominate; among recalled words, staleness and poor
// accuracy both raise priority, and words older than a week get a boost
// capped at 30 days so new additions don't bury them forever.
func Score(w word.Word, now time.Time) float64 {
	nowMs := now.UnixMilli()

	var score float64
	if w.RecallCount == 0 {
		score += 1000
	}

	if w.LastRecallAt != nil {
		daysSinceRecall := float64(nowMs-*w.LastRecallAt) / dayMs
		score += daysSinceRecall * 10
	} else {
		score += 100
	}

	if w.RecallCount > 0 {
		score += (1 - w.Accuracy()) * 50
	}

	daysSinceAdded := float64(nowMs-w.AddedAt) / dayMs
	if daysSinceAdded > 7 {
		if daysSinceAdded > 30 {
			daysSinceAdded = 30
		}
		score += daysSinceAdded
	}

	return score
}

// SelectForToday returns the highest-scored words, at most the configured
// daily count, shuffled so that selection order never leaks into question
// order. An empty diary yields an empty result.
func (s *Selector) SelectForToday(all []word.Word) []word.Word {
	if len(all) == 0 {
		return nil
	}

	now := s.now()
	type scoredWord struct {
		word  word.Word
		score float64
	}
	scored := make([]scoredWord, 0, len(all))
	for _, w := range all {
		scored = append(scored, scoredWord{word: w, score: Score(w, now)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	count := s.count
	if len(scored) < count {
		count = len(scored)
	}
	selected := make([]word.Word, 0, count)
	for _, sw := range scored[:count] {
		selected = append(selected, sw.word)
	}

	s.rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}
