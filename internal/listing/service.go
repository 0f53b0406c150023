package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/reapclone/internal/githubapi"
)

const (
	listingClientMissingMessageConstant = "listing github client not configured"
	ownerMissingMessageConstant         = "owner must be provided"
	repositoryMissingMessageConstant    = "repository must be provided"
	listErrorTemplateConstant           = "unable to list %s for %s: %w"
	repositoriesNounConstant            = "repositories"
	commitsNounConstant                 = "commits"
	branchesNounConstant                = "branches"
	repositoryPathTemplateConstant      = "%s/%s"
)

var (
	// ErrGitHubClientNotConfigured indicates the service was built without a client.
	ErrGitHubClientNotConfigured = errors.New(listingClientMissingMessageConstant)
	// ErrOwnerMissing indicates an empty owner argument.
	ErrOwnerMissing = errors.New(ownerMissingMessageConstant)
	// ErrRepositoryMissing indicates an empty repository argument.
	ErrRepositoryMissing = errors.New(repositoryMissingMessageConstant)
)

// Service fetches complete listings through the paginated client.
type Service struct {
	client   *githubapi.Client
	resolver *githubapi.AccountTypeResolver
	maxPages int
	perPage  int
}

// NewService constructs a Service. Non-positive limits fall back to the client defaults.
func NewService(client *githubapi.Client, maxPages int, perPage int) (*Service, error) {
	if client == nil {
		return nil, ErrGitHubClientNotConfigured
	}
	resolver, resolverError := githubapi.NewAccountTypeResolver(client)
	if resolverError != nil {
		return nil, resolverError
	}
	return &Service{client: client, resolver: resolver, maxPages: maxPages, perPage: perPage}, nil
}

// ListRepositories lists the owner's repositories. An unknown account type is resolved by probing.
func (service *Service) ListRepositories(executionContext context.Context, owner string, accountType githubapi.AccountType) ([]githubapi.Repository, error) {
	trimmedOwner := strings.TrimSpace(owner)
	if len(trimmedOwner) == 0 {
		return nil, ErrOwnerMissing
	}

	if !accountType.IsKnown() {
		resolvedAccountType, resolveError := service.resolver.ResolveAccountType(executionContext, trimmedOwner)
		if resolveError != nil {
			return nil, fmt.Errorf(listErrorTemplateConstant, repositoriesNounConstant, trimmedOwner, resolveError)
		}
		accountType = resolvedAccountType
	}

	repositories, fetchError := githubapi.FetchAllWithPageSize[githubapi.Repository](executionContext, service.client, githubapi.ListRepositories, githubapi.PathParameters{
		BaseURL:     service.client.BaseURL(),
		Owner:       trimmedOwner,
		AccountType: accountType,
	}, service.maxPages, service.perPage)
	if fetchError != nil {
		return nil, fmt.Errorf(listErrorTemplateConstant, repositoriesNounConstant, trimmedOwner, fetchError)
	}
	return repositories, nil
}

// ListCommits lists the commits of owner/repository.
func (service *Service) ListCommits(executionContext context.Context, owner string, repository string) ([]githubapi.Commit, error) {
	parameters, parametersError := service.repositoryParameters(owner, repository)
	if parametersError != nil {
		return nil, parametersError
	}

	commits, fetchError := githubapi.FetchAllWithPageSize[githubapi.Commit](executionContext, service.client, githubapi.ListCommits, parameters, service.maxPages, service.perPage)
	if fetchError != nil {
		return nil, fmt.Errorf(listErrorTemplateConstant, commitsNounConstant, fmt.Sprintf(repositoryPathTemplateConstant, parameters.Owner, parameters.Repository), fetchError)
	}
	return commits, nil
}

// ListBranches lists the branches of owner/repository.
func (service *Service) ListBranches(executionContext context.Context, owner string, repository string) ([]githubapi.Branch, error) {
	parameters, parametersError := service.repositoryParameters(owner, repository)
	if parametersError != nil {
		return nil, parametersError
	}

	branches, fetchError := githubapi.FetchAllWithPageSize[githubapi.Branch](executionContext, service.client, githubapi.ListBranches, parameters, service.maxPages, service.perPage)
	if fetchError != nil {
		return nil, fmt.Errorf(listErrorTemplateConstant, branchesNounConstant, fmt.Sprintf(repositoryPathTemplateConstant, parameters.Owner, parameters.Repository), fetchError)
	}
	return branches, nil
}

func (service *Service) repositoryParameters(owner string, repository string) (githubapi.PathParameters, error) {
	trimmedOwner := strings.TrimSpace(owner)
	if len(trimmedOwner) == 0 {
		return githubapi.PathParameters{}, ErrOwnerMissing
	}
	trimmedRepository := strings.TrimSpace(repository)
	if len(trimmedRepository) == 0 {
		return githubapi.PathParameters{}, ErrRepositoryMissing
	}
	return githubapi.PathParameters{
		BaseURL:    service.client.BaseURL(),
		Owner:      trimmedOwner,
		Repository: trimmedRepository,
	}, nil
}
