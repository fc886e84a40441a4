// Package word provides the vocabulary diary domain models and stores.
package word

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Word is a single vocabulary diary entry with its senses and recall counters.
type Word struct {
	ID       string  `yaml:"id" json:"id" db:"id"`
	Word     string  `yaml:"word" json:"word" db:"word"`
	Phonetic string  `yaml:"phonetic,omitempty" json:"phonetic,omitempty" db:"phonetic"`
	Senses   []Sense `yaml:"senses" json:"senses" db:"-"`

	// AddedAt and LastRecallAt are epoch milliseconds. LastRecallAt is nil
	// until the word has been answered in a recall session at least once.
	AddedAt      int64  `yaml:"added_at" json:"addedAt" db:"added_at"`
	LastRecallAt *int64 `yaml:"last_recall_at,omitempty" json:"lastRecallAt,omitempty" db:"last_recall_at"`
	RecallCount  int    `yaml:"recall_count" json:"recallCount" db:"recall_count"`
	CorrectCount int    `yaml:"correct_count" json:"correctCount" db:"correct_count"`
}

// Sense groups definitions under a part of speech.
type Sense struct {
	PartOfSpeech string       `yaml:"part_of_speech" json:"partOfSpeech"`
	Definitions  []Definition `yaml:"definitions" json:"definitions"`
}

type Definition struct {
	Text               string `yaml:"text" json:"text"`
	Example            string `yaml:"example,omitempty" json:"example,omitempty"`
	Translation        string `yaml:"translation,omitempty" json:"translation,omitempty"`
	ExampleTranslation string `yaml:"example_translation,omitempty" json:"exampleTranslation,omitempty"`
}

// New creates a diary entry for the given display text with a fresh ID
// and AddedAt set to now.
func New(text string, senses []Sense) Word {
	return Word{
		ID:      uuid.NewString(),
		Word:    text,
		Senses:  senses,
		AddedAt: time.Now().UnixMilli(),
	}
}

// Key returns the case-insensitive uniqueness key within a diary.
func (w Word) Key() string {
	return strings.ToLower(w.Word)
}

// Accuracy returns the fraction of correct recalls, or 0 if never recalled.
func (w Word) Accuracy() float64 {
	if w.RecallCount == 0 {
		return 0
	}
	return float64(w.CorrectCount) / float64(w.RecallCount)
}

// FirstDefinition returns the first definition of the first sense,
// or false when the word carries no usable sense.
func (w Word) FirstDefinition() (Definition, bool) {
	if len(w.Senses) == 0 || len(w.Senses[0].Definitions) == 0 {
		return Definition{}, false
	}
	return w.Senses[0].Definitions[0], true
}
