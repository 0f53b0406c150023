package cloning

import (
	"strings"

	"github.com/temirov/reapclone/internal/githubapi"
)

// CommandConfiguration captures persistent settings for the clone workflow.
type CommandConfiguration struct {
	Owner        string                `mapstructure:"owner"`
	AccountType  githubapi.AccountType `mapstructure:"account_type"`
	Destination  string                `mapstructure:"destination"`
	Concurrency  int                   `mapstructure:"concurrency"`
	SkipArchived bool                  `mapstructure:"skip_archived"`
}

// DefaultCommandConfiguration returns baseline configuration values for the clone workflow.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Owner:        "",
		AccountType:  githubapi.AccountTypeUnknown,
		Destination:  defaultDestinationDirectoryConstant,
		Concurrency:  DefaultConcurrencyLimit,
		SkipArchived: false,
	}
}

// DefaultConfigurationValues exposes the defaults as configuration keys rooted at prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + ".owner":         defaults.Owner,
		prefix + ".account_type":  "",
		prefix + ".destination":   defaults.Destination,
		prefix + ".concurrency":   defaults.Concurrency,
		prefix + ".skip_archived": defaults.SkipArchived,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.Destination = strings.TrimSpace(configuration.Destination)
	if len(sanitized.Destination) == 0 {
		sanitized.Destination = defaultDestinationDirectoryConstant
	}
	if sanitized.Concurrency <= 0 {
		sanitized.Concurrency = DefaultConcurrencyLimit
	}
	return sanitized
}
