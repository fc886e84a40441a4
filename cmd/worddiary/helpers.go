package main

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/worddiary/worddiary/internal/config"
	"github.com/worddiary/worddiary/internal/word"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openWordStore picks the diary backend: MySQL when a DSN is configured,
// otherwise the YAML diary file.
func openWordStore(cfg *config.Config) (word.Store, func(), error) {
	if cfg.Database.DSN != "" {
		db, err := sqlx.Connect("mysql", cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlx.Connect(mysql) > %w", err)
		}
		return word.NewDBStore(db), func() {
			_ = db.Close()
		}, nil
	}
	return word.NewDiaryStore(cfg.Diary.File), func() {}, nil
}
