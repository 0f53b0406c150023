package githubapi

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	configurationHostKeyConstant        = "host"
	configurationTokenKeyConstant       = "token"
	configurationHTTPTimeoutKeyConstant = "http_timeout"
	configurationPerPageKeyConstant     = "per_page"
	configurationMaxPagesKeyConstant    = "max_pages"
	configurationKeySeparatorConstant   = "."
)

// Configuration captures persistent settings for GitHub API access.
type Configuration struct {
	Host        string        `mapstructure:"host"`
	Token       string        `mapstructure:"token"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	PerPage     int           `mapstructure:"per_page"`
	MaxPages    int           `mapstructure:"max_pages"`
}

// DefaultConfiguration returns baseline GitHub API settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		Host:        "",
		Token:       "",
		HTTPTimeout: defaultHTTPTimeoutConstant,
		PerPage:     DefaultPerPage,
		MaxPages:    DefaultMaxPages,
	}
}

// DefaultConfigurationValues exposes the defaults as configuration keys rooted at prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		prefixedKey(prefix, configurationHostKeyConstant):        defaults.Host,
		prefixedKey(prefix, configurationTokenKeyConstant):       defaults.Token,
		prefixedKey(prefix, configurationHTTPTimeoutKeyConstant): defaults.HTTPTimeout.String(),
		prefixedKey(prefix, configurationPerPageKeyConstant):     defaults.PerPage,
		prefixedKey(prefix, configurationMaxPagesKeyConstant):    defaults.MaxPages,
	}
}

// Sanitize trims values and replaces non-positive limits with defaults.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Host = strings.TrimSpace(configuration.Host)
	sanitized.Token = strings.TrimSpace(configuration.Token)
	if sanitized.HTTPTimeout <= 0 {
		sanitized.HTTPTimeout = defaultHTTPTimeoutConstant
	}
	if sanitized.PerPage <= 0 {
		sanitized.PerPage = DefaultPerPage
	}
	if sanitized.MaxPages <= 0 {
		sanitized.MaxPages = DefaultMaxPages
	}
	return sanitized
}

// NewClientFromConfiguration resolves the API root for the configured host and constructs a Client.
// The token argument replaces Configuration.Token so callers can apply their own credential precedence.
func NewClientFromConfiguration(configuration Configuration, token string, userAgent string, logger *zap.Logger) (*Client, error) {
	sanitized := configuration.Sanitize()
	baseURL, baseURLError := ResolveBaseURL(sanitized.Host)
	if baseURLError != nil {
		return nil, baseURLError
	}
	return NewClient(ClientOptions{
		BaseURL:   baseURL,
		Token:     token,
		UserAgent: userAgent,
		Timeout:   sanitized.HTTPTimeout,
		Logger:    logger,
	})
}

func prefixedKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
