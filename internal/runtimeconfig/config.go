package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrStorageProviderUnknown indicates an unsupported repository backend.
var ErrStorageProviderUnknown = errors.New("localize config: storage provider is invalid")

// ErrStorageDSNRequired ensures persistent storage always carries a connection string.
var ErrStorageDSNRequired = errors.New("localize config: storage dsn is required for the bun provider")

// ErrDirectoryTimeoutInvalid rejects negative directory lookup bounds.
var ErrDirectoryTimeoutInvalid = errors.New("localize config: directory timeout must be zero or positive")

var ErrAuditQueueSizeInvalid = errors.New("localize config: audit queue size must be zero or positive")
var ErrAuditRetentionInvalid = errors.New("localize config: audit retention must be zero or positive days")
var ErrLoggingProviderRequired = errors.New("localize config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("localize config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("localize config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("localize config: logging format is invalid")

// Storage providers accepted by the module facade.
const (
	StorageProviderMemory = "memory"
	StorageProviderBun    = "bun"
)

// Config aggregates feature flags and adapter bindings for the localize module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Storage   StorageConfig
	Cache     CacheConfig
	Directory DirectoryConfig
	Audit     AuditConfig
	Commands  CommandsConfig
	Logging   LoggingConfig
	Features  Features
}

// StorageConfig selects the repository backend. The memory provider keeps
// everything in process; the bun provider opens the configured database.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
}

// CacheConfig captures read-through cache behaviour for project lookups.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// DirectoryConfig bounds the external directory fallback during sign-in.
type DirectoryConfig struct {
	Timeout time.Duration
}

// AuditConfig tunes the asynchronous audit recorder and its retention job.
type AuditConfig struct {
	QueueSize     int
	RetentionDays int
	CleanupCron   string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled          bool
	AutoRegisterCron bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Logger bool
}

// DefaultConfig returns opinionated defaults: in-memory repositories, a three
// second directory bound, and a daily audit cleanup keeping ninety days.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: StorageProviderMemory,
			Driver:   "sqlite3",
			DSN:      "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Directory: DirectoryConfig{
			Timeout: 3 * time.Second,
		},
		Audit: AuditConfig{
			QueueSize:     256,
			RetentionDays: 90,
			CleanupCron:   "@daily",
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Features: Features{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalizeProvider(cfg.Storage.Provider) {
	case "", StorageProviderMemory:
	case StorageProviderBun:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Directory.Timeout < 0 {
		return ErrDirectoryTimeoutInvalid
	}
	if cfg.Audit.QueueSize < 0 {
		return ErrAuditQueueSizeInvalid
	}
	if cfg.Audit.RetentionDays < 0 {
		return ErrAuditRetentionInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLoggingProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
