package githubauth

import (
	"go.uber.org/zap"

	"github.com/temirov/reapclone/internal/githubapi"
)

const (
	credentialSelectedLogMessageConstant = "github credential selected"
	credentialMissingLogMessageConstant  = "no github credential configured; requests are anonymous"
	logFieldCredentialSourceConstant     = "source"
)

// ClientFactory builds API clients whose credential follows flag, configuration, then environment precedence.
type ClientFactory struct {
	Resolver  CredentialResolver
	UserAgent string
	Logger    *zap.Logger
}

// NewClient resolves the credential and constructs a client for the configured host.
func (factory ClientFactory) NewClient(configuration githubapi.Configuration, flagToken string) (*githubapi.Client, error) {
	logger := factory.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	credential, found := factory.Resolver.Resolve(flagToken, configuration.Token)
	if found {
		logger.Debug(credentialSelectedLogMessageConstant, zap.String(logFieldCredentialSourceConstant, string(credential.Source)))
	} else {
		logger.Debug(credentialMissingLogMessageConstant)
	}

	userAgent := factory.UserAgent
	if len(userAgent) == 0 {
		userAgent = githubapi.DefaultUserAgent
	}

	return githubapi.NewClientFromConfiguration(configuration, credential.Token, userAgent, logger)
}
