// Package config loads glint configuration files.
package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvRedisPassword overrides adapter.redis.password when set.
const EnvRedisPassword = "GLINT_REDIS_PASSWORD"

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "glint.yaml"

// Adapter kinds.
const (
	KindMemory  = "memory"
	KindRedis   = "redis"
	KindLevelDB = "leveldb"
	KindFile    = "file"
)

// Config is the root of a glint configuration file.
// Field names follow the bridge options: prefix, ttl_attribute, disable_ttl, ttl.
type Config struct {
	Prefix       string `mapstructure:"prefix"`
	TTLAttribute string `mapstructure:"ttl_attribute"`
	DisableTTL   bool   `mapstructure:"disable_ttl"`
	TTL          int    `mapstructure:"ttl"`

	Adapter    AdapterConfig    `mapstructure:"adapter"`
	Encryption EncryptionConfig `mapstructure:"encryption"`
	PII        PIIConfig        `mapstructure:"pii"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

type AdapterConfig struct {
	Kind     string `mapstructure:"kind"`
	Database string `mapstructure:"database"`
	Type     string `mapstructure:"type"`

	Memory  MemoryConfig  `mapstructure:"memory"`
	Redis   RedisConfig   `mapstructure:"redis"`
	LevelDB LevelDBConfig `mapstructure:"leveldb"`
	File    FileConfig    `mapstructure:"file"`
}

type MemoryConfig struct {
	Size int `mapstructure:"size"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// TTL is a fixed expiration applied to every key, e.g. "30m". Zero keeps keys forever.
	TTL time.Duration `mapstructure:"ttl"`
}

type LevelDBConfig struct {
	Path string `mapstructure:"path"`
}

type FileConfig struct {
	Path string `mapstructure:"path"`
}

// EncryptionConfig holds base64-encoded 32-byte AES keys.
type EncryptionConfig struct {
	Key          string   `mapstructure:"key"`
	FallbackKeys []string `mapstructure:"fallback_keys"`
}

type PIIConfig struct {
	Patterns []string `mapstructure:"patterns"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Adapter: AdapterConfig{
			Kind:    KindMemory,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			LevelDB: LevelDBConfig{Path: filepath.Join(".glint", "leveldb")},
			File:    FileConfig{Path: filepath.Join(".glint", "sessions")},
		},
		Server: ServerConfig{Addr: ":8080", Metrics: true},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a configuration file (YAML or JSON) on top of Default.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if pw := os.Getenv(EnvRedisPassword); pw != "" {
		cfg.Adapter.Redis.Password = pw
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses data as JSON when ext is ".json" and as YAML otherwise,
// then decodes the result onto cfg, keeping fields the data does not mention.
func Decode(data []byte, ext string, cfg *Config) error {
	raw := map[string]any{}
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate reports configuration errors that would otherwise surface on first use.
func (c Config) Validate() error {
	switch c.Adapter.Kind {
	case KindMemory, KindRedis, KindLevelDB, KindFile:
	default:
		return fmt.Errorf("unknown adapter kind %q", c.Adapter.Kind)
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl must not be negative, got %d", c.TTL)
	}
	if c.Adapter.Redis.TTL < 0 {
		return fmt.Errorf("adapter.redis.ttl must not be negative, got %s", c.Adapter.Redis.TTL)
	}
	if _, _, err := c.Encryption.Keys(); err != nil {
		return err
	}
	for i, p := range c.PII.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid pii.patterns[%d]: %w", i, err)
		}
	}
	return nil
}

// Keys decodes the encryption keys. active is nil when encryption is not configured.
func (e EncryptionConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if e.Key == "" {
		if len(e.FallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("encryption.fallback_keys requires encryption.key")
		}
		return nil, nil, nil
	}

	active, err = decodeKey(e.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid encryption.key: %w", err)
	}
	for i, k := range e.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid encryption.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
