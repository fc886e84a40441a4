package recall

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worddiary/worddiary/internal/word"
)

func runWord() word.Word {
	return word.Word{
		ID:   "w-run",
		Word: "run",
		Senses: []word.Sense{
			{
				PartOfSpeech: "verb",
				Definitions: []word.Definition{
					{Text: "move quickly", Example: "I like to run fast"},
				},
			},
		},
	}
}

func TestQuestionFactory_Build_Definition(t *testing.T) {
	tests := []struct {
		name       string
		word       word.Word
		wantPrompt string
		wantAnswer string
		wantNil    bool
	}{
		{
			name:       "first definition of first sense",
			word:       runWord(),
			wantPrompt: `What is the meaning of "run"?`,
			wantAnswer: "move quickly",
		},
		{
			name:    "no senses",
			word:    word.Word{ID: "w1", Word: "ghost"},
			wantNil: true,
		},
		{
			name: "sense without definitions",
			word: word.Word{
				ID: "w2", Word: "hollow",
				Senses: []word.Sense{{PartOfSpeech: "noun"}},
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := NewQuestionFactory(rand.New(rand.NewSource(1)))

			got := factory.buildDefinition(tt.word)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, KindDefinition, got.Kind)
			assert.Equal(t, tt.wantPrompt, got.Prompt)
			assert.Equal(t, tt.wantAnswer, got.CorrectAnswer)
			assert.Equal(t, tt.word.ID, got.SourceWordID)
			assert.Equal(t, []string{tt.wantAnswer}, got.Options)
		})
	}
}

func TestQuestionFactory_Build_PartOfSpeech(t *testing.T) {
	factory := NewQuestionFactory(rand.New(rand.NewSource(7)))

	got := factory.buildPartOfSpeech(runWord())
	require.NotNil(t, got)
	assert.Equal(t, KindPartOfSpeech, got.Kind)
	assert.Equal(t, "verb", got.CorrectAnswer)
	require.Len(t, got.Options, 4)

	seen := make(map[string]bool)
	correctCount := 0
	for _, option := range got.Options {
		assert.False(t, seen[option], "duplicate option %q", option)
		seen[option] = true
		assert.Contains(t, partOfSpeechUniverse, option)
		if option == "verb" {
			correctCount++
		}
	}
	assert.Equal(t, 1, correctCount)

	assert.Nil(t, factory.buildPartOfSpeech(word.Word{ID: "w3", Word: "void"}))
}

func TestQuestionFactory_Build_FillBlank(t *testing.T) {
	tests := []struct {
		name       string
		word       word.Word
		wantPrompt string
		wantNil    bool
	}{
		{
			name:       "whole word replaced with blank",
			word:       runWord(),
			wantPrompt: "Fill in the blank: I like to _____ fast",
		},
		{
			name: "case-insensitive replacement of every occurrence",
			word: word.Word{
				ID: "w4", Word: "run",
				Senses: []word.Sense{{
					PartOfSpeech: "verb",
					Definitions: []word.Definition{
						{Text: "move quickly", Example: "Run now, or I will run later"},
					},
				}},
			},
			wantPrompt: "Fill in the blank: _____ now, or I will _____ later",
		},
		{
			name: "substring occurrence does not qualify",
			word: word.Word{
				ID: "w5", Word: "run",
				Senses: []word.Sense{{
					PartOfSpeech: "verb",
					Definitions: []word.Definition{
						{Text: "move quickly", Example: "The runner was running"},
					},
				}},
			},
			wantNil: true,
		},
		{
			name: "no examples at all",
			word: word.Word{
				ID: "w6", Word: "drift",
				Senses: []word.Sense{{
					PartOfSpeech: "verb",
					Definitions:  []word.Definition{{Text: "move slowly"}},
				}},
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := NewQuestionFactory(rand.New(rand.NewSource(1)))

			got := factory.buildFillBlank(tt.word)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, KindFillBlank, got.Kind)
			assert.Equal(t, tt.wantPrompt, got.Prompt)
			assert.Equal(t, tt.word.Word, got.CorrectAnswer)
		})
	}
}

func TestQuestionFactory_Build_KindSelection(t *testing.T) {
	// Without a qualifying example only definition and part-of-speech
	// questions may come out, regardless of seed.
	noExample := word.Word{
		ID: "w7", Word: "quiet",
		Senses: []word.Sense{{
			PartOfSpeech: "adjective",
			Definitions:  []word.Definition{{Text: "making little noise"}},
		}},
	}

	for seed := int64(0); seed < 20; seed++ {
		factory := NewQuestionFactory(rand.New(rand.NewSource(seed)))
		got := factory.Build(noExample)
		require.NotNil(t, got)
		assert.NotEqual(t, KindFillBlank, got.Kind)
	}

	// With a qualifying example, every kind shows up across seeds.
	kinds := make(map[Kind]bool)
	for seed := int64(0); seed < 50; seed++ {
		factory := NewQuestionFactory(rand.New(rand.NewSource(seed)))
		got := factory.Build(runWord())
		require.NotNil(t, got)
		kinds[got.Kind] = true
	}
	assert.Len(t, kinds, 3)
}

func TestQuestionFactory_EnrichOptions(t *testing.T) {
	pool := []word.Word{
		runWord(),
		{ID: "w-a", Word: "apple"},
		{ID: "w-b", Word: "bridge"},
		{ID: "w-c", Word: "candle"},
		{ID: "w-d", Word: "drum"},
	}

	tests := []struct {
		name        string
		question    Question
		pool        []word.Word
		wantOptions int
	}{
		{
			name: "definition question gets four options",
			question: Question{
				SourceWordID:  "w-run",
				Kind:          KindDefinition,
				CorrectAnswer: "move quickly",
				Options:       []string{"move quickly"},
			},
			pool:        pool,
			wantOptions: 4,
		},
		{
			name: "fill-blank question gets four options",
			question: Question{
				SourceWordID:  "w-run",
				Kind:          KindFillBlank,
				CorrectAnswer: "run",
				Options:       []string{"run"},
			},
			pool:        pool,
			wantOptions: 4,
		},
		{
			name: "small pool degrades below four options",
			question: Question{
				SourceWordID:  "w-run",
				Kind:          KindDefinition,
				CorrectAnswer: "move quickly",
				Options:       []string{"move quickly"},
			},
			pool:        pool[:3],
			wantOptions: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := NewQuestionFactory(rand.New(rand.NewSource(3)))

			got := factory.EnrichOptions([]Question{tt.question}, tt.pool)
			require.Len(t, got, 1)
			require.Len(t, got[0].Options, tt.wantOptions)

			seen := make(map[string]bool)
			correctCount := 0
			for _, option := range got[0].Options {
				assert.False(t, seen[option], "duplicate option %q", option)
				seen[option] = true
				if option == tt.question.CorrectAnswer {
					correctCount++
					continue
				}
				assert.NotEqual(t, "run", option, "source word must not be its own distractor")
			}
			assert.Equal(t, 1, correctCount, "correct answer must appear exactly once")
		})
	}
}

func TestQuestionFactory_EnrichOptions_LeavesPartOfSpeechUntouched(t *testing.T) {
	factory := NewQuestionFactory(rand.New(rand.NewSource(3)))

	question := Question{
		SourceWordID:  "w-run",
		Kind:          KindPartOfSpeech,
		CorrectAnswer: "verb",
		Options:       []string{"noun", "verb", "adverb", "pronoun"},
	}
	got := factory.EnrichOptions([]Question{question}, []word.Word{runWord(), {ID: "w-a", Word: "apple"}})
	require.Len(t, got, 1)
	assert.Equal(t, question.Options, got[0].Options)
}
