package main

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/worddiary/worddiary/internal/cli"
	"github.com/worddiary/worddiary/internal/recall"
)

func newRecallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recall",
		Short: "Run today's recall quiz. Rerunning resumes where you left off",
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

			rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
			engine := recall.NewEngine(
				store,
				recall.NewFileSessionStore(cfg.Diary.SessionFile),
				recall.NewSelector(cfg.Diary.DailyCount, time.Now, rnd),
				recall.NewQuestionFactory(rnd),
				recall.NewStatsUpdater(store, time.Now),
				time.Now,
			)

			return cli.NewRecallQuizCLI(engine).Run(cmd.Context())
		},
	}
}
