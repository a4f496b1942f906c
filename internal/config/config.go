package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

type Config struct {
	AppEnv         string
	Port           string
	Storage        string
	DataDir        string
	DatabasePath   string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins string
	LogLevel       string
}

// Load reads configs/config.yml when present, with MINIBANK_* environment
// variables taking precedence over file values and coded defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("storage", StorageJSON)
	v.SetDefault("data_dir", "data")
	v.SetDefault("database_path", "data/minibank.db")
	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("token_ttl_minutes", 60)
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("MINIBANK")
	v.AutomaticEnv()

	v.AddConfigPath("configs")
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	cfg := Config{
		AppEnv:         v.GetString("app_env"),
		Port:           v.GetString("port"),
		Storage:        v.GetString("storage"),
		DataDir:        v.GetString("data_dir"),
		DatabasePath:   v.GetString("database_path"),
		JWTSecret:      v.GetString("jwt_secret"),
		TokenTTL:       time.Duration(v.GetInt("token_ttl_minutes")) * time.Minute,
		AllowedOrigins: v.GetString("allowed_origins"),
		LogLevel:       v.GetString("log_level"),
	}
	if cfg.Storage != StorageJSON && cfg.Storage != StorageSQLite {
		return Config{}, errors.New("storage must be json or sqlite")
	}
	return cfg, nil
}
