package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worddiary/worddiary/internal/translation"
)

func newTranslateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "translate",
		Short: "Backfill missing definition translations across the diary",
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

			client := translation.NewClient(cfg.Translator.Endpoint, cfg.Translator.TargetLanguage)
			filled, err := translation.NewBackfiller(store, client).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("backfiller.Run() > %w", err)
			}

			if filled == 0 {
				fmt.Println("Every definition already has a translation")
				return nil
			}
			fmt.Printf("Filled %d translations into the diary\n", filled)
			return nil
		},
	}
}
