package indy

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/sbca/indy-go/pkg/indy/logging"
)

const logPrefix = "indy:Config"

// Config holds the settings needed to load and initialize libindy. Fields
// with envconfig tags can be read from the environment with ConfigFromEnv.
type Config struct {
	// LibraryPath overrides the platform default library file name.
	LibraryPath string `envconfig:"INDY_LIBRARY_PATH"`

	// Runtime settings sent with indy_set_runtime_config.
	CryptoThreadPoolSize int   `envconfig:"INDY_CRYPTO_THREAD_POOL_SIZE"`
	CollectBacktrace     *bool `envconfig:"INDY_COLLECT_BACKTRACE"`

	// LogLevel is the minimum level for loggers built from this config.
	LogLevel string `envconfig:"INDY_LOG_LEVEL" default:"info"`

	// Runtime replaces the runtime settings above when set. A string is sent
	// as is; any other value is marshalled to JSON.
	Runtime any `ignored:"true"`

	Logger  logging.Logger `ignored:"true"`
	Metrics *Metrics       `ignored:"true"`
}

// RuntimeConfig is the document accepted by indy_set_runtime_config.
type RuntimeConfig struct {
	CryptoThreadPoolSize int   `json:"crypto_thread_pool_size,omitempty"`
	CollectBacktrace     *bool `json:"collect_backtrace,omitempty"`
}

// ConfigFromEnv loads a Config from INDY_* environment variables.
func ConfigFromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("%s - %w", logPrefix, err)
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.CryptoThreadPoolSize < 0 {
		return fmt.Errorf("%s - INDY_CRYPTO_THREAD_POOL_SIZE must not be negative", logPrefix)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s - INDY_LOG_LEVEL: %w", logPrefix, err)
	}
	return nil
}

func (c Config) runtimeDocument() (string, error) {
	switch rt := c.Runtime.(type) {
	case nil:
	case string:
		return rt, nil
	default:
		doc, err := json.Marshal(rt)
		if err != nil {
			return "", fmt.Errorf("%s - marshal runtime config: %w", logPrefix, err)
		}
		return string(doc), nil
	}
	if c.CryptoThreadPoolSize == 0 && c.CollectBacktrace == nil {
		return "", nil
	}
	doc, err := json.Marshal(RuntimeConfig{
		CryptoThreadPoolSize: c.CryptoThreadPoolSize,
		CollectBacktrace:     c.CollectBacktrace,
	})
	if err != nil {
		return "", err
	}
	return string(doc), nil
}

// ParseLevel accepts trace, debug, info, warn or error. An empty string is
// info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logging.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
