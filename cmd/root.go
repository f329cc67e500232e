package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/ai"
	"github.com/spigell/scout-profile/internal/fitscore"
	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/provider"
	"github.com/spigell/scout-profile/internal/secrets"
	"github.com/spigell/scout-profile/internal/store"
)

const (
	app = "scout-profile"

	defaultStoreDir = ".scout-profile"
)

type Config struct {
	Store    store.Config    `mapstructure:"store"`
	Provider provider.Config `mapstructure:"provider"`
	AI       ai.Config       `mapstructure:"ai"`
	Scoring  ScoringConfig   `mapstructure:"scoring"`
}

type ScoringConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "scout-profile keeps a club recruitment profile and scores transfer candidates against it",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindings := map[string]string{
		"store.database-url":     "SCOUT_DATABASE_URL",
		"store.redis-url":        "SCOUT_REDIS_URL",
		"provider.api-key-file":  "SCOUT_PROVIDER_KEY_FILE",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("store.backend", store.BackendFile)
	viper.SetDefault("store.dir", defaultStoreDir)
	viper.SetDefault("store.driver", store.DriverPgx)
	viper.SetDefault("store.max-retries", store.DefaultMaxRetries)
	viper.SetDefault("ai.provider", ai.ProviderGemini)
	viper.SetDefault("scoring.concurrency", fitscore.DefaultConcurrency)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is scout-profile.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A missing .env is fine, a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a default, so the file is only required when given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}
	if config == nil {
		return nil, errors.New("config is required")
	}

	return config, nil
}

// setup builds the logger and the decoded configuration shared by all commands.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Debug("starting",
		zap.String("version", version),
		zap.String(logger.FieldBackend, config.Store.Backend),
		zap.String("config_file", viper.ConfigFileUsed()),
	)
	return l, config
}

// openStore resolves the store secrets and opens the configured backend.
func openStore(ctx context.Context, cfg store.Config) (store.Store, error) {
	if cfg.Backend == store.BackendPostgres {
		url, err := secrets.Load(secrets.Source{
			Name:  "database url",
			Value: cfg.DatabaseURL,
			File:  cfg.DatabaseURLFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set store.database-url, store.database-url-file or SCOUT_DATABASE_URL)", err)
		}
		cfg.DatabaseURL = url
	}

	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
	}
	return s, nil
}
