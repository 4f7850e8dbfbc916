package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig  `mapstructure:"server"`
	MongoDB  MongoDBConfig `mapstructure:"mongodb"`
	Admin    AdminConfig   `mapstructure:"admin"`
	JWT      JWTConfig     `mapstructure:"jwt"`
	Storage  StorageConfig `mapstructure:"storage"`
	LogLevel string        `mapstructure:"loglevel"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connecttimeout"`
}

// AdminConfig holds the shared admin secret. TokenHash, when set, is a
// bcrypt hash and takes precedence over Token.
type AdminConfig struct {
	Token     string `mapstructure:"token"`
	TokenHash string `mapstructure:"tokenhash"`
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string `mapstructure:"secret"`
	ExpiresIn int    `mapstructure:"expiresin"` // hours
}

// StorageConfig selects the repository backend
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// Load reads .env (if present), then config.yaml from . or ./config (if
// present), then environment variables, on top of the defaults.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "4000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.database", "test")
	v.SetDefault("mongodb.connecttimeout", 10*time.Second)
	v.SetDefault("admin.token", "")
	v.SetDefault("admin.tokenhash", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiresin", 24)
	v.SetDefault("storage.driver", DriverMongoDB)
	v.SetDefault("loglevel", "info")
}

// bindLegacyEnv maps the flat variable names used by existing deployments.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("mongodb.uri", "MONGODB_URI")
	_ = v.BindEnv("mongodb.database", "MONGODB_DB")
	_ = v.BindEnv("admin.token", "ADMIN_TOKEN")
	_ = v.BindEnv("admin.tokenhash", "ADMIN_TOKEN_HASH")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("loglevel", "LOG_LEVEL")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
}

// SlogLevel converts LogLevel into a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
