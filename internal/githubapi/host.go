package githubapi

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the public GitHub REST API root.
	DefaultBaseURL                      = "https://api.github.com"
	enterprisePathPrefixConstant        = "/api/v3"
	defaultSchemeConstant               = "https"
	schemeSeparatorConstant             = "://"
	invalidHostErrorTemplateConstant    = "invalid host %q: %w"
	hostMissingErrorTemplateConstant    = "invalid host %q: host name is empty"
	unsupportedSchemeErrorTemplateConst = "invalid host %q: unsupported scheme %q"
)

// ResolveBaseURL converts an optional host into an API root.
// An empty host selects the public API; any other host selects the enterprise /api/v3 prefix.
func ResolveBaseURL(host string) (string, error) {
	trimmedHost := strings.TrimSuffix(strings.TrimSpace(host), urlPathSeparatorConstant)
	if len(trimmedHost) == 0 {
		return DefaultBaseURL, nil
	}

	candidate := trimmedHost
	if !strings.Contains(candidate, schemeSeparatorConstant) {
		candidate = defaultSchemeConstant + schemeSeparatorConstant + candidate
	}

	parsedURL, parseError := url.Parse(candidate)
	if parseError != nil {
		return "", fmt.Errorf(invalidHostErrorTemplateConstant, host, parseError)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf(unsupportedSchemeErrorTemplateConst, host, parsedURL.Scheme)
	}
	if len(parsedURL.Host) == 0 {
		return "", fmt.Errorf(hostMissingErrorTemplateConstant, host)
	}

	basePath := strings.TrimSuffix(parsedURL.Path, urlPathSeparatorConstant)
	if !strings.HasSuffix(basePath, enterprisePathPrefixConstant) {
		basePath += enterprisePathPrefixConstant
	}

	return parsedURL.Scheme + schemeSeparatorConstant + parsedURL.Host + basePath, nil
}
