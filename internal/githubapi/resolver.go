package githubapi

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

const (
	ownerMissingMessageConstant            = "owner must be provided"
	resolutionOrganisationLabelConstant    = "organisation"
	resolutionUserLabelConstant            = "user"
	resolutionUnresolvedLabelConstant      = "unresolved"
	probeFailedLogMessageConstant          = "account type probe failed"
	accountResolvedLogMessageConstant      = "account type resolved"
	logFieldOwnerConstant                  = "owner"
	logFieldAccountTypeConstant            = "account_type"
	resolverClientNotConfiguredMessageText = "account type resolver client not configured"
)

var (
	// ErrOwnerMissing indicates an empty owner was supplied for resolution.
	ErrOwnerMissing = errors.New(ownerMissingMessageConstant)
	// ErrResolverClientNotConfigured indicates the resolver was built without a Client.
	ErrResolverClientNotConfigured = errors.New(resolverClientNotConfiguredMessageText)
)

// ResolutionTag identifies the outcome of an account type probe sequence.
type ResolutionTag int

// Resolution outcomes.
const (
	ResolutionUnresolved ResolutionTag = iota
	ResolutionOrganisation
	ResolutionUser
)

func (resolutionTag ResolutionTag) String() string {
	switch resolutionTag {
	case ResolutionOrganisation:
		return resolutionOrganisationLabelConstant
	case ResolutionUser:
		return resolutionUserLabelConstant
	default:
		return resolutionUnresolvedLabelConstant
	}
}

// Resolution carries the probe outcome together with every probe failure observed on the way.
type Resolution struct {
	Owner             string
	Tag               ResolutionTag
	OrganisationProbe error
	UserProbe         error
}

// AccountType converts the resolution tag into an AccountType.
func (resolution Resolution) AccountType() AccountType {
	switch resolution.Tag {
	case ResolutionOrganisation:
		return AccountTypeOrganisation
	case ResolutionUser:
		return AccountTypeUser
	default:
		return AccountTypeUnknown
	}
}

// Err returns nil for resolved owners and an UnresolvedAccountError otherwise.
func (resolution Resolution) Err() error {
	if resolution.Tag != ResolutionUnresolved {
		return nil
	}
	return &UnresolvedAccountError{
		Owner:             resolution.Owner,
		OrganisationProbe: resolution.OrganisationProbe,
		UserProbe:         resolution.UserProbe,
	}
}

// AccountTypeResolver determines whether an owner is an organisation or a user by probing listing endpoints.
type AccountTypeResolver struct {
	client *Client
}

// NewAccountTypeResolver constructs a resolver bound to the client.
func NewAccountTypeResolver(client *Client) (*AccountTypeResolver, error) {
	if client == nil {
		return nil, ErrResolverClientNotConfigured
	}
	return &AccountTypeResolver{client: client}, nil
}

// Resolve probes the organisation listing first and falls back to the user listing.
// It issues at most two requests and never retries.
func (resolver *AccountTypeResolver) Resolve(executionContext context.Context, owner string) Resolution {
	trimmedOwner := strings.TrimSpace(owner)
	resolution := Resolution{Owner: trimmedOwner, Tag: ResolutionUnresolved}
	if len(trimmedOwner) == 0 {
		resolution.OrganisationProbe = ErrOwnerMissing
		resolution.UserProbe = ErrOwnerMissing
		return resolution
	}

	organisationProbeError := resolver.probe(executionContext, trimmedOwner, AccountTypeOrganisation)
	if organisationProbeError == nil {
		resolution.Tag = ResolutionOrganisation
		resolver.logResolution(resolution)
		return resolution
	}
	resolution.OrganisationProbe = organisationProbeError

	userProbeError := resolver.probe(executionContext, trimmedOwner, AccountTypeUser)
	if userProbeError == nil {
		resolution.Tag = ResolutionUser
		resolver.logResolution(resolution)
		return resolution
	}
	resolution.UserProbe = userProbeError

	return resolution
}

// ResolveAccountType returns the owner's account type or an UnresolvedAccountError.
func (resolver *AccountTypeResolver) ResolveAccountType(executionContext context.Context, owner string) (AccountType, error) {
	resolution := resolver.Resolve(executionContext, owner)
	if resolutionError := resolution.Err(); resolutionError != nil {
		return AccountTypeUnknown, resolutionError
	}
	return resolution.AccountType(), nil
}

func (resolver *AccountTypeResolver) probe(executionContext context.Context, owner string, accountType AccountType) error {
	parameters := PathParameters{
		BaseURL:     resolver.client.BaseURL(),
		Owner:       owner,
		AccountType: accountType,
	}

	_, probeError := FetchPage[Repository](executionContext, resolver.client, ListRepositories, parameters, 1, DefaultPerPage)
	if probeError != nil {
		resolver.client.logger.Debug(probeFailedLogMessageConstant,
			zap.String(logFieldOwnerConstant, owner),
			zap.String(logFieldAccountTypeConstant, accountType.String()),
			zap.Error(probeError),
		)
	}
	return probeError
}

func (resolver *AccountTypeResolver) logResolution(resolution Resolution) {
	resolver.client.logger.Debug(accountResolvedLogMessageConstant,
		zap.String(logFieldOwnerConstant, resolution.Owner),
		zap.String(logFieldAccountTypeConstant, resolution.AccountType().String()),
	)
}
