// Package config resolves ringlens settings from defaults, an optional
// YAML or JSON file, RINGLENS_* environment variables and command-line
// overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/ringlens/internal/logging"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/persistence/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config file is given and it exists.
const DefaultFile = "ringlens.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config is the resolved application configuration.
type Config struct {
	// Scenarios is a JSON/YAML file, a loam directory or an http(s) URL.
	// Empty means the embedded sample scenarios.
	Scenarios   string      `mapstructure:"scenarios" yaml:"scenarios"`
	Addr        string      `mapstructure:"addr" yaml:"addr" validate:"required"`
	Log         LogConfig   `mapstructure:"log" yaml:"log"`
	Store       StoreConfig `mapstructure:"store" yaml:"store"`
	CORS        CORSConfig  `mapstructure:"cors" yaml:"cors"`
	DefaultLens string      `mapstructure:"default_lens" yaml:"default_lens" validate:"oneof=fraud aml ts"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver" yaml:"driver" validate:"oneof=memory file redis"`
	Path   string      `mapstructure:"path" yaml:"path"`
	Redis  RedisConfig `mapstructure:"redis" yaml:"redis"`

	// EncryptionKey is a base64 AES-256 key. When set, sessions are sealed
	// before they reach the store; FallbackKeys still decrypt older ones.
	EncryptionKey string   `mapstructure:"encryption_key" yaml:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys" yaml:"fallback_keys"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db" validate:"gte=0"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl" validate:"gte=0"`
}

type CORSConfig struct {
	Origin string `mapstructure:"origin" yaml:"origin"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr: ":8080",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Store: StoreConfig{
			Driver: DriverMemory,
			Path:   ".ringlens/sessions",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "ringlens:session:",
			},
		},
		CORS:        CORSConfig{Origin: "*"},
		DefaultLens: string(domain.DefaultLens),
	}
}

// envKeys maps environment variables to config keys.
var envKeys = map[string]string{
	"RINGLENS_SCENARIOS":      "scenarios",
	"RINGLENS_ADDR":           "addr",
	"RINGLENS_LOG_LEVEL":      "log.level",
	"RINGLENS_LOG_FORMAT":     "log.format",
	"RINGLENS_STORE_DRIVER":   "store.driver",
	"RINGLENS_STORE_PATH":     "store.path",
	"RINGLENS_STORE_KEY":      "store.encryption_key",
	"RINGLENS_REDIS_ADDR":     "store.redis.addr",
	"RINGLENS_REDIS_PASSWORD": "store.redis.password",
	"RINGLENS_REDIS_DB":       "store.redis.db",
	"RINGLENS_REDIS_PREFIX":   "store.redis.prefix",
	"RINGLENS_REDIS_TTL":      "store.redis.ttl",
	"RINGLENS_CORS_ORIGIN":    "cors.origin",
	"RINGLENS_DEFAULT_LENS":   "default_lens",
}

// EnvKeys returns the supported environment variables and their keys.
func EnvKeys() map[string]string {
	out := make(map[string]string, len(envKeys))
	for k, v := range envKeys {
		out[k] = v
	}
	return out
}

// Load resolves the configuration. path may be empty, in which case
// DefaultFile is used if present. lookup reads environment variables;
// nil means os.LookupEnv.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	env := map[string]string{}
	for name, key := range envKeys {
		if v, ok := lookup(name); ok {
			env[key] = v
		}
	}
	if err := cfg.Apply(env); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// YAML is a superset of JSON, one parser serves both.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := decode(raw, c); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

// Apply overrides settings from dotted keys such as "store.redis.db".
// Values are weakly typed: "2" decodes into an int and "30s" into a duration.
func (c *Config) Apply(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	raw := map[string]any{}
	for key, value := range values {
		setPath(raw, strings.Split(key, "."), value)
	}
	return decode(raw, c)
}

func setPath(m map[string]any, path []string, value string) {
	if len(path) == 1 {
		m[path[0]] = value
		return
	}
	child, ok := m[path[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[path[0]] = child
	}
	setPath(child, path[1:], value)
}

func decode(raw map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

var validate = validator.New()

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	if c.Store.Driver == DriverRedis && c.Store.Redis.Addr == "" {
		return errors.New("invalid configuration: store.redis.addr is required for the redis driver")
	}
	if _, err := c.Store.Encryption(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Encryption decodes the store keys. It returns nil when encryption is off.
func (s StoreConfig) Encryption() (*middleware.EncryptionConfig, error) {
	if s.EncryptionKey == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, errors.New("store.fallback_keys requires store.encryption_key")
		}
		return nil, nil
	}
	active, err := middleware.ParseKey(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	enc := &middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range s.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return enc, nil
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithFormat(os.Stderr, level, c.Log.Format), nil
}
