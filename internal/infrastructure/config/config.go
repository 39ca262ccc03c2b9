package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "stockdesk/internal/shared/config"
)

// DevSecretKey is the placeholder secret used when none is configured.
const DevSecretKey = "dev-secret-change-me"

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Storage   sharedConfig.StorageConfig   `mapstructure:"storage"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
	Seed      sharedConfig.SeedConfig      `mapstructure:"seed"`
}

// UsesDevSecret reports whether the signing secret was left at its placeholder.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.SecretKey == DevSecretKey
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// legacyEnv keeps the plain variable names recognised by earlier deployments.
var legacyEnv = map[string]string{
	"auth.secret_key":    "SECRET_KEY",
	"storage.data_dir":   "DATA_DIR",
	"storage.upload_dir": "UPLOAD_DIR",
}

// Load reads configuration from file (optional) and environment.
// configFile may be empty, in which case config.yaml is searched in the usual places.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("/etc/stockdesk")
	}

	v.SetEnvPrefix("STOCKDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		prefixed := "STOCKDESK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the most recently loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
	if cfg.Auth.SecretKey == "" {
		return fmt.Errorf("auth.secret_key must not be empty")
	}
	if cfg.Auth.SessionHours <= 0 {
		return fmt.Errorf("auth.session_hours must be positive")
	}
	if cfg.Storage.DataDir == "" || cfg.Storage.UploadDir == "" {
		return fmt.Errorf("storage.data_dir and storage.upload_dir are required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.read_timeout_sec", 15)
	v.SetDefault("server.write_timeout_sec", 30)
	v.SetDefault("server.shutdown_timeout_sec", 10)
	v.SetDefault("server.max_upload_mb", 16)
	v.SetDefault("server.default_language", "ru")
	v.SetDefault("server.templates_dir", "")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.file", "warehouse.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "stockdesk")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.secret_key", DevSecretKey)
	v.SetDefault("auth.session_hours", 12)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.cookie_secure", false)

	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.upload_dir", "uploads")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.login_per_minute", 10)

	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.users_file", "")
}
