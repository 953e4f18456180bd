package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/scadmin/internal/admin"
	"github.com/danmuck/scadmin/internal/logging"
	"github.com/danmuck/scadmin/internal/protocol/codec"
	"github.com/danmuck/scadmin/internal/protocol/frame"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the resolved scadminctl configuration.
type Config struct {
	ClientID   string
	APIVersion codec.Version
	Output     string
	LogLevel   string
	Limits     frame.Limits
}

type fileConfig struct {
	ClientID         string `toml:"client_id"`
	APIVersion       int16  `toml:"api_version"`
	Output           string `toml:"output"`
	LogLevel         string `toml:"log_level"`
	MaxClientIDBytes uint32 `toml:"max_client_id_bytes"`
	MaxPayloadBytes  uint32 `toml:"max_payload_bytes"`
}

func DefaultConfig() Config {
	return Config{
		ClientID:   "scadminctl",
		APIVersion: admin.DeleteAPIVersion,
		Output:     OutputText,
		LogLevel:   "info",
		Limits:     frame.DefaultLimits(),
	}
}

// Load overlays the keys defined in the TOML file at path onto DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("client_id") {
		cfg.ClientID = strings.TrimSpace(raw.ClientID)
	}
	if meta.IsDefined("api_version") {
		cfg.APIVersion = codec.Version(raw.APIVersion)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("max_client_id_bytes") {
		cfg.Limits.MaxClientIDBytes = raw.MaxClientIDBytes
	}
	if meta.IsDefined("max_payload_bytes") {
		cfg.Limits.MaxPayloadBytes = raw.MaxPayloadBytes
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config (%s) invalid: %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if len(cfg.ClientID) > int(cfg.Limits.MaxClientIDBytes) {
		return fmt.Errorf("client_id longer than max_client_id_bytes")
	}
	if cfg.APIVersion < 0 {
		return fmt.Errorf("api_version must not be negative")
	}
	switch cfg.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output %q", cfg.Output)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if cfg.Limits.MaxPayloadBytes == 0 {
		return fmt.Errorf("max_payload_bytes must be positive")
	}
	return nil
}
