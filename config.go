package site

import "github.com/goliatone/go-site/internal/runtimeconfig"

var (
	ErrSiteURLRequired        = runtimeconfig.ErrSiteURLRequired
	ErrContentDirRequired     = runtimeconfig.ErrContentDirRequired
	ErrDataDirRequired        = runtimeconfig.ErrDataDirRequired
	ErrEmailAPIKeyRequired    = runtimeconfig.ErrEmailAPIKeyRequired
	ErrEmailSenderRequired    = runtimeconfig.ErrEmailSenderRequired
	ErrEmailRecipientRequired = runtimeconfig.ErrEmailRecipientRequired
	ErrStorageProviderUnknown = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrSearchLimitInvalid     = runtimeconfig.ErrSearchLimitInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config            = runtimeconfig.Config
	ContentConfig     = runtimeconfig.ContentConfig
	ParserConfig      = runtimeconfig.ParserConfig
	SearchConfig      = runtimeconfig.SearchConfig
	EmailConfig       = runtimeconfig.EmailConfig
	SubscribersConfig = runtimeconfig.SubscribersConfig
	StorageConfig     = runtimeconfig.StorageConfig
	ServerConfig      = runtimeconfig.ServerConfig
	LintConfig        = runtimeconfig.LintConfig
	RoutesConfig      = runtimeconfig.RoutesConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the baseline site configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads an optional YAML file and env files, then applies
// environment overrides on top of DefaultConfig.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	return runtimeconfig.Load(path, envFiles...)
}
