package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	App      AppConfig
	Overpass OverpassConfig
	HTTP     HTTPConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port      int
	GinMode   string // debug, release, test
	RateLimit string // <requests>/<unit>, e.g. 30/min; empty disables

	// parsed from RateLimit by Load
	Limit RateLimitConfig `mapstructure:"-"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds presentation settings
type AppConfig struct {
	Locale             string // BCP 47 tag used for name ordering
	DisplayLimit       int    // places shown per search
	PlaceholderBaseURL string // where category placeholder images live
}

// OverpassConfig holds map data query settings
type OverpassConfig struct {
	ResultCap int
	Retry     RetryConfig
}

// RetryConfig bounds how often a failed upstream request is repeated
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

// HTTPConfig holds outbound HTTP settings
type HTTPConfig struct {
	UserAgent string
}

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Option customises Load
type Option func(*loader)

type loader struct {
	configFile string
	envFiles   []string
	flags      map[string]*pflag.Flag
	defaults   map[string]any
}

// WithConfigFile reads path instead of searching for config.yaml.
func WithConfigFile(path string) Option {
	return func(l *loader) { l.configFile = path }
}

// WithEnvFiles loads the given dotenv files instead of ./.env.
func WithEnvFiles(paths ...string) Option {
	return func(l *loader) { l.envFiles = paths }
}

// WithDefault replaces the built-in default for key. Commands use it when
// their flag defaults differ from the server's.
func WithDefault(key string, value any) Option {
	return func(l *loader) { l.defaults[key] = value }
}

// WithFlag lets a command-line flag override key when the flag is set.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(l *loader) {
		if flag != nil {
			l.flags[key] = flag
		}
	}
}

// Load reads configuration from dotenv files, the config file, environment
// variables and bound flags, later sources overriding earlier ones.
func Load(opts ...Option) (*Config, error) {
	l := &loader{
		flags:    make(map[string]*pflag.Flag),
		defaults: make(map[string]any),
	}
	for _, opt := range opts {
		opt(l)
	}

	// .env values only fill variables that are not already set
	envFiles := l.envFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.nearby")
	}

	setDefaults(v)
	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}

	// NEARBY_OVERPASS_RETRY_MAXATTEMPTS and friends
	v.SetEnvPrefix("NEARBY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range l.flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	limit, err := ParseRateLimit(cfg.Server.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid server.rateLimit: %w", err)
	}
	cfg.Server.Limit = limit

	if _, err := language.Parse(cfg.App.Locale); err != nil {
		return nil, fmt.Errorf("invalid app.locale %q: %w", cfg.App.Locale, err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.rateLimit", "30/min")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.locale", "en")
	v.SetDefault("app.displayLimit", 12)
	v.SetDefault("app.placeholderBaseURL", "images")
	v.SetDefault("overpass.resultCap", 25)
	v.SetDefault("overpass.retry.maxAttempts", 3)
	v.SetDefault("overpass.retry.delay", 3*time.Second)
	v.SetDefault("http.userAgent", "nearby/1.0")
}

// ParseRateLimit reads "<requests>/<unit>" such as "30/min". An empty value
// or "off" disables limiting.
func ParseRateLimit(value string) (RateLimitConfig, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "off") {
		return RateLimitConfig{}, nil
	}

	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Locale returns the configured name-ordering locale
func (c *Config) Locale() language.Tag {
	return language.Make(c.App.Locale)
}

// NewLogger creates a new slog.Logger writing to stdout
func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo creates a new slog.Logger based on the configuration
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
