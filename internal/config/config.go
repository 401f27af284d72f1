package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string        `mapstructure:"env" validate:"required"`               // current application environment (local, dev, production etc)
	LogLevel         string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	TelegramAPIToken string        `mapstructure:"-"`                                     // Telegram API token loaded from environment
	WordsJSONPath    string        `mapstructure:"words_json_path" validate:"required"`   // vocabulary bundle
	StoriesJSONPath  string        `mapstructure:"stories_json_path" validate:"required"` // story bundle
	AudioDir         string        `mapstructure:"audio_dir"`                             // pronunciation files, optional
	FlushInterval    time.Duration `mapstructure:"flush_interval" validate:"gt=0"`        // how often unsaved mastery is retried
	Quiz             Quiz          `mapstructure:"quiz"`
	Mastery          Mastery       `mapstructure:"mastery"`
	DB               DB            `mapstructure:"database"` // database configuration section
}

// Quiz configures quiz sessions.
type Quiz struct {
	Size int `mapstructure:"size" validate:"gte=1,lte=50"` // questions per quiz
}

// Mastery configures scoring.
type Mastery struct {
	Floor  int  `mapstructure:"floor" validate:"lte=0"` // lowest score a word can drop to
	Sticky bool `mapstructure:"sticky"`                 // mastered words stay mastered
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                                  // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections" validate:"gte=1"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime" validate:"gte=0"` // maximum lifetime of a single connection
	Migrate         bool          `mapstructure:"migrate"`                            // apply migrations on startup
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// IsProduction reports whether the bot runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from a .env file, config files and environment variables.
func Load() (*Config, error) {
	return load("./config")
}

func load(configDir string) (*Config, error) {
	// A missing .env file is fine: variables may come from the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("words_json_path", "assets/words.json")
	v.SetDefault("stories_json_path", "assets/stories.json")
	v.SetDefault("audio_dir", "assets/audio")
	v.SetDefault("flush_interval", "1m")
	v.SetDefault("quiz.size", 10)
	v.SetDefault("mastery.floor", 0)
	v.SetDefault("mastery.sticky", false)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.migrate", true)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
