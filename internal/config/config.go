package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpAddr           string        `yaml:"http_addr" validate:"required"`
	PublicURL          string        `yaml:"public_url" validate:"omitempty,url"` // base of self links, derived from request if empty
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
	StoreTimeout       time.Duration `yaml:"store_timeout"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	CorsAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	Storage            Storage       `yaml:"storage"`
	UI                 UI            `yaml:"ui"`
	RateLimit          RateLimit     `yaml:"rate_limit"`
}

type Storage struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres redis memory"`
	Pg     Pg     `yaml:"pg"`
	Redis  Redis  `yaml:"redis"`
}

type Pg struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Dbname       string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type Redis struct {
	Addr   string `yaml:"addr"`
	DB     int    `yaml:"db"`
	Prefix string `yaml:"prefix"` // namespace for all keys
}

type UI struct {
	SessionTTL  time.Duration `yaml:"session_ttl"` // idle sessions older than this are evicted
	MaxSessions int           `yaml:"max_sessions" validate:"gte=0"`
}

// RateLimit throttles mutating requests per client IP, zero disables it.
type RateLimit struct {
	WritesPerSecond float64 `yaml:"writes_per_second" validate:"gte=0"`
	Burst           int     `yaml:"burst" validate:"gte=0"`
}

type Private struct {
	PgPassword    string `yaml:"pg_password"`
	RedisPassword string `yaml:"redis_password"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

// MustLoad reads public.yaml and, if present, private.yaml from configFolder.
// Secrets are then overridden from the environment (a .env file in the
// working directory is honoured). Panics on a missing or invalid config.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		mustLoadPath(privatePath, &private)
	}

	cfg := &Config{Public: public, Private: private}
	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BOARDS_PG_PASSWORD"); v != "" {
		c.Private.PgPassword = v
	}
	if v := os.Getenv("BOARDS_REDIS_PASSWORD"); v != "" {
		c.Private.RedisPassword = v
	}
	if v := os.Getenv("BOARDS_STORAGE_DRIVER"); v != "" {
		c.Public.Storage.Driver = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Public.HttpAddr = ":" + v
	}
}

func (c *Config) applyDefaults() {
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	if c.Public.StoreTimeout <= 0 {
		c.Public.StoreTimeout = 5 * time.Second
	}
	if c.Public.UI.SessionTTL <= 0 {
		c.Public.UI.SessionTTL = 30 * time.Minute
	}
	if c.Public.UI.MaxSessions == 0 {
		c.Public.UI.MaxSessions = 10000
	}
	if c.Public.Storage.Pg.SSLMode == "" {
		c.Public.Storage.Pg.SSLMode = "disable"
	}
	if c.Public.RateLimit.WritesPerSecond > 0 && c.Public.RateLimit.Burst == 0 {
		c.Public.RateLimit.Burst = 1
	}
	if c.Public.Storage.Redis.Prefix == "" {
		c.Public.Storage.Redis.Prefix = "boards"
	}
}
