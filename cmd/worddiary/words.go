package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/worddiary/worddiary/internal/dictionary"
	"github.com/worddiary/worddiary/internal/statistics"
	"github.com/worddiary/worddiary/internal/word"
)

// timeFilter exposes statistics.Filter as a flag value.
type timeFilter statistics.Filter

func (f *timeFilter) Set(val string) error {
	parsed, err := statistics.ParseFilter(val)
	if err != nil {
		return err
	}
	*f = timeFilter(parsed)
	return nil
}

func (f timeFilter) String() string {
	return string(f)
}

func (f *timeFilter) Type() string {
	return "filter"
}

var _ pflag.Value = (*timeFilter)(nil)

func newWordsCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "words",
		Short: "Manage the word diary",
	}

	rootCommand.AddCommand(
		newWordsListCommand(),
		newWordsAddCommand(),
		newWordsDeleteCommand(),
		newWordsExportCommand(),
		newWordsImportCommand(),
	)
	return &rootCommand
}

func newWordsListCommand() *cobra.Command {
	filter := timeFilter(statistics.FilterAll)
	command := &cobra.Command{
		Use:   "list",
		Short: "List diary words, optionally only those added recently",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openWordStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			words, err := store.ReadAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("store.ReadAll() > %w", err)
			}
			words = statistics.FilterByTime(words, statistics.Filter(filter), time.Now())

			bold := color.New(color.Bold)
			italic := color.New(color.Italic)
			fmt.Printf("%d words\n\n", len(words))
			for _, w := range words {
				_, _ = bold.Printf("%s", w.Word)
				if w.Phonetic != "" {
					fmt.Printf(" %s", w.Phonetic)
				}
				fmt.Println()
				if def, ok := w.FirstDefinition(); ok {
					_, _ = italic.Printf("  %s", def.Text)
					if def.Translation != "" {
						fmt.Printf(" (%s)", def.Translation)
					}
					fmt.Println()
				}
				if w.RecallCount > 0 {
					fmt.Printf("  recalled %d times, %.0f%% correct\n", w.RecallCount, w.Accuracy()*100)
				}
			}
			return nil
		},
	}
	command.Flags().Var(&filter, "filter", "Time filter. Possible values are day, week, month, year, all")
	return command
}

func newWordsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add word...",
		Short: "Look up words in the dictionary and add them to the diary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openWordStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx := cmd.Context()
			words, err := store.ReadAll(ctx)
			if err != nil {
				return fmt.Errorf("store.ReadAll() > %w", err)
			}
			existing := make(map[string]bool, len(words))
			for _, w := range words {
				existing[w.Key()] = true
			}

			client := dictionary.NewClient(cfg.Dictionary.Endpoint, cfg.Dictionary.CacheDirectory)
			added := 0
			for _, text := range args {
				entry, err := client.Lookup(ctx, text)
				if err != nil {
					return fmt.Errorf("client.Lookup(%s) > %w", text, err)
				}
				if existing[entry.Key()] {
					fmt.Printf("%q is already in the diary, skipping\n", entry.Word)
					continue
				}
				existing[entry.Key()] = true
				words = append(words, entry)
				added++
				fmt.Printf("Added %q %s\n", entry.Word, entry.Phonetic)
			}
			if added == 0 {
				return nil
			}

			if err := store.WriteAll(ctx, words); err != nil {
				return fmt.Errorf("store.WriteAll() > %w", err)
			}
			fmt.Printf("\n%d words added\n", added)
			return nil
		},
	}
}

func newWordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete word",
		Short: "Delete a word from the diary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openWordStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx := cmd.Context()
			words, err := store.ReadAll(ctx)
			if err != nil {
				return fmt.Errorf("store.ReadAll() > %w", err)
			}

			target := word.Word{Word: args[0]}
			for _, w := range words {
				if w.Key() == target.Key() {
					if err := store.DeleteByID(ctx, w.ID); err != nil {
						return fmt.Errorf("store.DeleteByID(%s) > %w", w.ID, err)
					}
					fmt.Printf("Deleted %q\n", w.Word)
					return nil
				}
			}
			return fmt.Errorf("word %q is not in the diary", args[0])
		},
	}
}

func newWordsExportCommand() *cobra.Command {
	var outputFile string
	command := &cobra.Command{
		Use:   "export",
		Short: "Export the diary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openWordStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			words, err := store.ReadAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("store.ReadAll() > %w", err)
			}
			payload, err := word.ExportDiary(words)
			if err != nil {
				return fmt.Errorf("word.ExportDiary() > %w", err)
			}

			if outputFile == "" {
				fmt.Println(string(payload))
				return nil
			}
			if err := os.WriteFile(outputFile, payload, 0o644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", outputFile, err)
			}
			fmt.Printf("Exported %d words to %s\n", len(words), outputFile)
			return nil
		},
	}
	command.Flags().StringVar(&outputFile, "output", "", "write the export to a file instead of stdout")
	return command
}

func newWordsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import file",
		Short: "Merge an exported diary into this one. On conflicts the newer entry wins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openWordStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
			}

			ctx := cmd.Context()
			words, err := store.ReadAll(ctx)
			if err != nil {
				return fmt.Errorf("store.ReadAll() > %w", err)
			}
			merged, imported, err := word.MergeImport(words, payload)
			if err != nil {
				return fmt.Errorf("word.MergeImport() > %w", err)
			}
			if err := store.WriteAll(ctx, merged); err != nil {
				return fmt.Errorf("store.WriteAll() > %w", err)
			}

			fmt.Printf("Imported %d words, the diary now holds %d\n", imported, len(merged))
			return nil
		},
	}
}
