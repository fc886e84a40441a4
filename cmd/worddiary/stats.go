package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/worddiary/worddiary/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	filter := timeFilter(statistics.FilterAll)
	var outputFile string
	var toPDF bool

	command := &cobra.Command{
		Use:   "stats",
		Short: "Report diary mastery statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if toPDF && outputFile == "" {
				return fmt.Errorf("--pdf requires --output with a .md file")
			}

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

			report := statistics.RenderMarkdown(
				statistics.Summarize(words),
				statistics.CalculatePeriods(words),
			)

			if outputFile == "" {
				fmt.Println(report)
				return nil
			}
			if err := os.WriteFile(outputFile, []byte(report), 0o644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", outputFile, err)
			}
			fmt.Printf("Wrote the report to %s\n", outputFile)

			if toPDF {
				pdfPath, err := statistics.ConvertMarkdownToPDF(outputFile)
				if err != nil {
					return fmt.Errorf("statistics.ConvertMarkdownToPDF(%s) > %w", outputFile, err)
				}
				fmt.Printf("Wrote the PDF to %s\n", pdfPath)
			}
			return nil
		},
	}
	command.Flags().Var(&filter, "filter", "Time filter. Possible values are day, week, month, year, all")
	command.Flags().StringVar(&outputFile, "output", "", "write the markdown report to a file instead of stdout")
	command.Flags().BoolVar(&toPDF, "pdf", false, "also convert the report to PDF, requires --output")
	return command
}
