package localize

import "github.com/goliatone/go-localize/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrDirectoryTimeoutInvalid = runtimeconfig.ErrDirectoryTimeoutInvalid
	ErrAuditQueueSizeInvalid   = runtimeconfig.ErrAuditQueueSizeInvalid
	ErrAuditRetentionInvalid   = runtimeconfig.ErrAuditRetentionInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

// Storage providers accepted by Config.Storage.Provider.
const (
	StorageProviderMemory = runtimeconfig.StorageProviderMemory
	StorageProviderBun    = runtimeconfig.StorageProviderBun
)

type (
	Config          = runtimeconfig.Config
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	DirectoryConfig = runtimeconfig.DirectoryConfig
	AuditConfig     = runtimeconfig.AuditConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	Features        = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
