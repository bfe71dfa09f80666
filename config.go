package weave

import "github.com/mresende/go-weave/internal/runtimeconfig"

var (
	ErrSiteRootRequired        = runtimeconfig.ErrSiteRootRequired
	ErrOutputDirNameRequired   = runtimeconfig.ErrOutputDirNameRequired
	ErrOutputDirNameNested     = runtimeconfig.ErrOutputDirNameNested
	ErrLiterateLanguageUnknown = runtimeconfig.ErrLiterateLanguageUnknown
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	MarkupConfig   = runtimeconfig.MarkupConfig
	LiterateConfig = runtimeconfig.LiterateConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
