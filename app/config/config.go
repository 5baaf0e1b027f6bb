package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	BackendURL     string
	BackendTimeout time.Duration
	Cache          CacheConfig
	TemplatesDir   string
	StaticDir      string
	Timezone       string
	CookieSecure   bool
	BlobTTL        time.Duration
	DraftTTL       time.Duration
	Debug          bool

	loc *time.Location
}

type CacheConfig struct {
	Driver        string // memory | redis
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("BACKEND_URL", "http://localhost:8080")
	v.SetDefault("BACKEND_TIMEOUT", time.Duration(0))
	v.SetDefault("CACHE_DRIVER", "memory")
	v.SetDefault("CACHE_TTL", 30*time.Second)
	v.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TEMPLATES_DIR", "./app/templates")
	v.SetDefault("STATIC_DIR", "./static")
	v.SetDefault("TIMEZONE", "Asia/Tashkent")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("BLOB_TTL", 10*time.Minute)
	v.SetDefault("DRAFT_TTL", 12*time.Hour)
	v.SetDefault("DEBUG", false)
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "config: load .env")
		}
		log.Println(".env file loaded")
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	defaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		BackendURL:     strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
		BackendTimeout: v.GetDuration("BACKEND_TIMEOUT"),
		Cache: CacheConfig{
			Driver:        strings.ToLower(v.GetString("CACHE_DRIVER")),
			TTL:           v.GetDuration("CACHE_TTL"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		TemplatesDir: v.GetString("TEMPLATES_DIR"),
		StaticDir:    v.GetString("STATIC_DIR"),
		Timezone:     v.GetString("TIMEZONE"),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
		BlobTTL:      v.GetDuration("BLOB_TTL"),
		DraftTTL:     v.GetDuration("DRAFT_TTL"),
		Debug:        v.GetBool("DEBUG"),
	}

	if cfg.BackendURL == "" {
		return nil, errors.New("config: BACKEND_URL is required")
	}
	switch cfg.Cache.Driver {
	case "memory", "redis":
	default:
		return nil, errors.Errorf("config: unknown CACHE_DRIVER %q", cfg.Cache.Driver)
	}
	cfg.loc = loadLocation(cfg.Timezone)
	return cfg, nil
}

// Location is the configured time zone, resolved once by Load. A Config
// built by hand resolves it on each call.
func (c *Config) Location() *time.Location {
	if c.loc != nil {
		return c.loc
	}
	return loadLocation(c.Timezone)
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: failed to load %s location, falling back to UTC+5: %v", name, err)
		return time.FixedZone("UZT", 5*60*60)
	}
	return loc
}
