package config

import (
	"fmt"
	"path/filepath"
	"time"
)

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	BaseURL         string `mapstructure:"base_url"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_sec"`
	MaxUploadMB     int64  `mapstructure:"max_upload_mb"`
	DefaultLanguage string `mapstructure:"default_language"`
	// TemplatesDir optionally holds HTML files that replace built-in pages of the same name.
	TemplatesDir    string `mapstructure:"templates_dir"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// DatabaseConfig selects the store. Driver "sqlite" keeps the file under the data directory.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	File            string `mapstructure:"file"`
	DSN             string `mapstructure:"dsn"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the MySQL DSN, preferring an explicit dsn value.
func (d *DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

// SQLitePath resolves the sqlite file relative to dataDir unless it is absolute.
func (d *DatabaseConfig) SQLitePath(dataDir string) string {
	if d.File == ":memory:" || filepath.IsAbs(d.File) {
		return d.File
	}
	return filepath.Join(dataDir, d.File)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	SecretKey    string `mapstructure:"secret_key"`
	SessionHours int    `mapstructure:"session_hours"`
	BcryptCost   int    `mapstructure:"bcrypt_cost"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

func (a *AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionHours) * time.Hour
}

type StorageConfig struct {
	DataDir   string `mapstructure:"data_dir"`
	UploadDir string `mapstructure:"upload_dir"`
}

// UploadPath returns the attachment directory. A relative upload_dir lives under data_dir.
func (s *StorageConfig) UploadPath() string {
	if filepath.IsAbs(s.UploadDir) {
		return s.UploadDir
	}
	return filepath.Join(s.DataDir, s.UploadDir)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	LoginPerMinute int `mapstructure:"login_per_minute"`
}

type SeedConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	UsersFile string `mapstructure:"users_file"`
}
