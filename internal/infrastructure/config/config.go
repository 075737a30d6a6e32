package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 參考資料來源
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceSQLite   = "sqlite"
)

// 快取後端
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Reference ReferenceConfig `mapstructure:"reference"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel  string          `mapstructure:"log_level"`
	LogDir    string          `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
}

// ReferenceConfig 分類目錄與食材資料的來源
type ReferenceConfig struct {
	Source         string        `mapstructure:"source"`
	CategoriesPath string        `mapstructure:"categories_path"`
	FoodsPath      string        `mapstructure:"foods_path"`
	CategoriesURL  string        `mapstructure:"categories_url"`
	FoodsURL       string        `mapstructure:"foods_url"`
	SQLitePath     string        `mapstructure:"sqlite_path"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Retries        int           `mapstructure:"retries"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Backend string        `mapstructure:"backend"`
	MaxSize int           `mapstructure:"max_size"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定：預設值 < 設定檔（APP_CONFIG_FILE）< 環境變數；.env 不存在時忽略
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	binds := map[string]string{
		"server.port":           "PORT",
		"reference.source":      "REFERENCE_SOURCE",
		"reference.sqlite_path": "REFERENCE_SQLITE_PATH",
		"cache.enabled":         "CACHE_ENABLED",
		"cache.backend":         "CACHE_BACKEND",
		"cache.redis.addr":      "REDIS_ADDR",
		"cache.redis.password":  "REDIS_PASSWORD",
		"rate_limit.enabled":    "RATE_LIMIT_ENABLED",
		"rate_limit.requests":   "RATE_LIMIT_REQUESTS",
		"rate_limit.window":     "RATE_LIMIT_WINDOW",
		"log_level":             "LOG_LEVEL",
		"log_dir":               "LOG_DIR",
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path := os.Getenv("APP_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "ayurveda-nutrition")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB
	v.SetDefault("server.cors_origins", []string{"*"})

	// 參考資料
	v.SetDefault("reference.source", SourceEmbedded)
	v.SetDefault("reference.categories_path", "data/categories.json")
	v.SetDefault("reference.foods_path", "data/foods.json")
	v.SetDefault("reference.categories_url", "")
	v.SetDefault("reference.foods_url", "")
	v.SetDefault("reference.sqlite_path", "data/reference.db")
	v.SetDefault("reference.timeout", "10s")
	v.SetDefault("reference.retries", 2)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.prefix", "ayurveda:report:")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", config.Server.Port)
	}
	if config.Server.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request timeout")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	ref := config.Reference
	switch ref.Source {
	case SourceEmbedded:
	case SourceFile:
		if ref.CategoriesPath == "" || ref.FoodsPath == "" {
			return fmt.Errorf("file source requires categories_path and foods_path")
		}
	case SourceHTTP:
		if ref.CategoriesURL == "" || ref.FoodsURL == "" {
			return fmt.Errorf("http source requires categories_url and foods_url")
		}
		if ref.Timeout <= 0 {
			return fmt.Errorf("invalid reference timeout")
		}
		if ref.Retries < 0 {
			return fmt.Errorf("invalid reference retries")
		}
	case SourceSQLite:
		if ref.SQLitePath == "" {
			return fmt.Errorf("sqlite source requires sqlite_path")
		}
	default:
		return fmt.Errorf("unknown reference source %q", ref.Source)
	}

	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case BackendMemory:
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
		case BackendRedis:
			if config.Cache.Redis.Addr == "" {
				return fmt.Errorf("redis backend requires cache.redis.addr")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}
	return nil
}
