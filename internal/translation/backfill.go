package translation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worddiary/worddiary/internal/word"
)

// Translator is the boundary the backfill depends on.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Backfiller walks the diary and fills empty Translation and
// ExampleTranslation fields. Words that already carry translations are
// left untouched, so the backfill is safe to re-run.
type Backfiller struct {
	words      word.Store
	translator Translator
}

func NewBackfiller(words word.Store, translator Translator) *Backfiller {
	return &Backfiller{words: words, translator: translator}
}

// Run translates missing fields across the whole diary and writes the
// diary back once at the end. It returns the number of filled fields.
// A failed translation skips that field and continues; only store
// failures abort the run.
func (b *Backfiller) Run(ctx context.Context) (int, error) {
	words, err := b.words.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("words.ReadAll() > %w", err)
	}

	filled := 0
	for wi := range words {
		for si := range words[wi].Senses {
			for di := range words[wi].Senses[si].Definitions {
				def := &words[wi].Senses[si].Definitions[di]

				if def.Translation == "" && def.Text != "" {
					if translated, err := b.translator.Translate(ctx, def.Text); err != nil {
						slog.Warn("skipping definition translation",
							"word", words[wi].Word, "error", err)
					} else {
						def.Translation = translated
						filled++
					}
				}

				if def.ExampleTranslation == "" && def.Example != "" {
					if translated, err := b.translator.Translate(ctx, def.Example); err != nil {
						slog.Warn("skipping example translation",
							"word", words[wi].Word, "error", err)
					} else {
						def.ExampleTranslation = translated
						filled++
					}
				}
			}
		}
	}

	if filled == 0 {
		return 0, nil
	}
	if err := b.words.WriteAll(ctx, words); err != nil {
		return 0, fmt.Errorf("words.WriteAll() > %w", err)
	}
	return filled, nil
}
