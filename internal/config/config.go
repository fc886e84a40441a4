// Package config loads and validates the worddiary configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Diary      DiaryConfig      `mapstructure:"diary"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

type DiaryConfig struct {
	// File holds the whole word diary; SessionFile holds the single
	// active recall session.
	File        string `mapstructure:"file" validate:"required"`
	SessionFile string `mapstructure:"session_file" validate:"required"`
	DailyCount  int    `mapstructure:"daily_count" validate:"gte=1,lte=50"`
}

type DictionaryConfig struct {
	Endpoint       string `mapstructure:"endpoint" validate:"required,url"`
	CacheDirectory string `mapstructure:"cache_directory" validate:"required"`
}

type TranslatorConfig struct {
	Endpoint       string `mapstructure:"endpoint" validate:"required,url"`
	TargetLanguage string `mapstructure:"target_language" validate:"required"`
}

// DatabaseConfig is optional; when DSN is set the diary lives in MySQL
// instead of the YAML file.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/worddiary")
	}

	v.SetDefault("diary.file", filepath.Join("diary", "diary.yml"))
	v.SetDefault("diary.session_file", filepath.Join("diary", "session.yml"))
	v.SetDefault("diary.daily_count", 10)
	v.SetDefault("dictionary.endpoint", "https://api.dictionaryapi.dev/api/v2/entries/en")
	v.SetDefault("dictionary.cache_directory", filepath.Join("diary", "dictionary"))
	v.SetDefault("translator.endpoint", "https://translate.googleapis.com/translate_a/single")
	v.SetDefault("translator.target_language", "zh-CN")

	// The database DSN carries credentials, so it comes from the environment only.
	if err := v.BindEnv("database.dsn", "WORDDIARY_DB_DSN"); err != nil {
		return nil, fmt.Errorf("failed to bind WORDDIARY_DB_DSN environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and returns translated, human-readable
// messages for every violated rule.
func (cfg *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator() > %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate.Struct() > %w", err)
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, fieldError.Translate(trans))
		}
		return fmt.Errorf("invalid configuration: %v", messages)
	}
	return nil
}
