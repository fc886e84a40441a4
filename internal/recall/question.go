package recall

import (
	"fmt"
	"math/rand"
	"regexp"

	"github.com/worddiary/worddiary/internal/word"
)

// Kind is the type of a recall question.
type Kind string

const (
	KindDefinition   Kind = "definition"
	KindPartOfSpeech Kind = "partOfSpeech"
	KindFillBlank    Kind = "fillBlank"
)

const blankPlaceholder = "_____"

// partOfSpeechUniverse is the fixed tag set distractors are drawn from.
var partOfSpeechUniverse = []string{
	"noun", "verb", "adjective", "adverb", "pronoun", "preposition", "conjunction",
}

// Question is one entry of a recall session. It references its source word
// by ID only; the word itself stays owned by the diary store.
type Question struct {
	SourceWordID  string   `yaml:"source_word_id" json:"sourceWordId"`
	Prompt        string   `yaml:"prompt" json:"prompt"`
	Kind          Kind     `yaml:"kind" json:"kind"`
	CorrectAnswer string   `yaml:"correct_answer" json:"correctAnswer"`
	Options       []string `yaml:"options" json:"options"`
}

// QuestionFactory turns diary entries into recall questions.
type QuestionFactory struct {
	rand *rand.Rand
}

func NewQuestionFactory(rnd *rand.Rand) *QuestionFactory {
	return &QuestionFactory{rand: rnd}
}

// Build produces a question of a randomly chosen kind, or nil when the word
// carries too little data for any kind. Definition and fill-blank questions
// leave Options as the bare correct answer until EnrichOptions runs.
func (f *QuestionFactory) Build(w word.Word) *Question {
	kinds := []Kind{KindDefinition, KindPartOfSpeech}
	if _, ok := blankableDefinition(w); ok {
		kinds = append(kinds, KindFillBlank)
	}

	switch kinds[f.rand.Intn(len(kinds))] {
	case KindDefinition:
		return f.buildDefinition(w)
	case KindPartOfSpeech:
		return f.buildPartOfSpeech(w)
	case KindFillBlank:
		return f.buildFillBlank(w)
	}
	return nil
}

func (f *QuestionFactory) buildDefinition(w word.Word) *Question {
	def, ok := w.FirstDefinition()
	if !ok {
		return nil
	}
	return &Question{
		SourceWordID:  w.ID,
		Prompt:        fmt.Sprintf("What is the meaning of %q?", w.Word),
		Kind:          KindDefinition,
		CorrectAnswer: def.Text,
		Options:       []string{def.Text},
	}
}

func (f *QuestionFactory) buildPartOfSpeech(w word.Word) *Question {
	if len(w.Senses) == 0 {
		return nil
	}
	correct := w.Senses[0].PartOfSpeech

	others := make([]string, 0, len(partOfSpeechUniverse))
	for _, tag := range partOfSpeechUniverse {
		if tag != correct {
			others = append(others, tag)
		}
	}
	f.rand.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	options := append([]string{correct}, others[:3]...)
	f.rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Question{
		SourceWordID:  w.ID,
		Prompt:        fmt.Sprintf("What part of speech is %q?", w.Word),
		Kind:          KindPartOfSpeech,
		CorrectAnswer: correct,
		Options:       options,
	}
}

func (f *QuestionFactory) buildFillBlank(w word.Word) *Question {
	def, ok := blankableDefinition(w)
	if !ok {
		return nil
	}

	blanked := wordPattern(w.Word).ReplaceAllString(def.Example, blankPlaceholder)
	if blanked == def.Example {
		return nil
	}

	return &Question{
		SourceWordID:  w.ID,
		Prompt:        fmt.Sprintf("Fill in the blank: %s", blanked),
		Kind:          KindFillBlank,
		CorrectAnswer: w.Word,
		Options:       []string{w.Word},
	}
}

// EnrichOptions fills definition and fill-blank questions with distractors
// drawn from other words of the selected pool: the correct answer plus up to
// 3 other display texts, shuffled. Part-of-speech questions already carry a
// full option set and are left untouched. With fewer than 3 other words the
// option set degrades below 4 entries instead of failing.
func (f *QuestionFactory) EnrichOptions(questions []Question, pool []word.Word) []Question {
	enriched := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Kind == KindPartOfSpeech {
			enriched = append(enriched, q)
			continue
		}

		others := make([]string, 0, len(pool))
		for _, w := range pool {
			if w.ID == q.SourceWordID {
				continue
			}
			others = append(others, w.Word)
		}
		f.rand.Shuffle(len(others), func(i, j int) {
			others[i], others[j] = others[j], others[i]
		})
		if len(others) > 3 {
			others = others[:3]
		}

		options := append([]string{q.CorrectAnswer}, others...)
		f.rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		q.Options = options
		enriched = append(enriched, q)
	}
	return enriched
}

// blankableDefinition returns the first definition whose example contains
// the word as a whole token, case-insensitively.
func blankableDefinition(w word.Word) (word.Definition, bool) {
	pattern := wordPattern(w.Word)
	for _, sense := range w.Senses {
		for _, def := range sense.Definitions {
			if def.Example == "" {
				continue
			}
			if pattern.MatchString(def.Example) {
				return def, true
			}
		}
	}
	return word.Definition{}, false
}

func wordPattern(text string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(text) + `\b`)
}
