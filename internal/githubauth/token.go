package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for GitHub credentials, in preference order.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

// Credential sources reported alongside resolved tokens.
const (
	SourceNone          CredentialSource = ""
	SourceFlag          CredentialSource = "flag"
	SourceConfiguration CredentialSource = "configuration"
)

// CredentialSource describes where a credential was found. Environment sources carry the variable name.
type CredentialSource string

// Credential is a static API token and the place it was read from.
type Credential struct {
	Token  string
	Source CredentialSource
}

// EnvironmentLookup reads an environment variable.
type EnvironmentLookup func(key string) (string, bool)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// CredentialResolver selects a GitHub token from explicit values and the environment.
type CredentialResolver struct {
	environmentLookup EnvironmentLookup
}

// NewCredentialResolver constructs a resolver. A nil lookup reads the process environment.
func NewCredentialResolver(environmentLookup EnvironmentLookup) CredentialResolver {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	return CredentialResolver{environmentLookup: environmentLookup}
}

// Resolve returns the first non-blank credential from the flag value, the configured value,
// and then GH_TOKEN, GITHUB_TOKEN, and GITHUB_API_TOKEN.
func (resolver CredentialResolver) Resolve(flagToken string, configuredToken string) (Credential, bool) {
	if trimmedToken := strings.TrimSpace(flagToken); len(trimmedToken) > 0 {
		return Credential{Token: trimmedToken, Source: SourceFlag}, true
	}
	if trimmedToken := strings.TrimSpace(configuredToken); len(trimmedToken) > 0 {
		return Credential{Token: trimmedToken, Source: SourceConfiguration}, true
	}

	environmentLookup := resolver.environmentLookup
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	for _, environmentKey := range tokenPreference {
		environmentValue, exists := environmentLookup(environmentKey)
		if !exists {
			continue
		}
		trimmedToken := strings.TrimSpace(environmentValue)
		if len(trimmedToken) == 0 {
			continue
		}
		return Credential{Token: trimmedToken, Source: CredentialSource(environmentKey)}, true
	}

	return Credential{}, false
}

// ResolveToken returns the first non-empty GitHub token in the provided environment map.
func ResolveToken(environment map[string]string) (string, bool) {
	credential, found := NewCredentialResolver(mapLookup(environment)).Resolve("", "")
	return credential.Token, found
}

func mapLookup(environment map[string]string) EnvironmentLookup {
	return func(key string) (string, bool) {
		if environment == nil {
			return "", false
		}
		value, exists := environment[key]
		return value, exists
	}
}
