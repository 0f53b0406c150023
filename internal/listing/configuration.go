package listing

import "strings"

// CommandConfiguration captures persistent settings for listing commands.
type CommandConfiguration struct {
	Output string `mapstructure:"output"`
}

// DefaultCommandConfiguration returns baseline configuration values for listing commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Output: string(OutputFormatTable)}
}

// DefaultConfigurationValues exposes the defaults as configuration keys rooted at prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + ".output": DefaultCommandConfiguration().Output,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Output = strings.ToLower(strings.TrimSpace(configuration.Output))
	if len(sanitized.Output) == 0 {
		sanitized.Output = string(OutputFormatTable)
	}
	return sanitized
}
