package cloning

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/reapclone/internal/githubapi"
)

const (
	ownerMissingMessageConstant             = "repository owner must be provided"
	serviceClientMissingMessageConstant     = "clone service github client not configured"
	defaultDestinationDirectoryConstant     = "."
	destinationDirectoryPermissionsConstant = 0o755
	resolveAccountTypeErrorTemplateConstant = "unable to determine account type for %s: %w"
	listRepositoriesErrorTemplateConstant   = "unable to list repositories for %s: %w"
	createDestinationErrorTemplateConstant  = "unable to create destination directory %s: %w"
	accountTypeResolvedLogMessageConstant   = "account type selected"
	repositoriesListedLogMessageConstant    = "repositories listed"
	archivedRepositoriesSkippedLogMessage   = "archived repositories skipped"
	logFieldOwnerConstant                   = "owner"
	logFieldAccountTypeConstant             = "account_type"
	logFieldAccountTypeSourceConstant       = "source"
	logFieldSkippedCountConstant            = "skipped"
	accountTypeSourceHintConstant           = "hint"
	accountTypeSourceProbeConstant          = "probe"
)

var (
	// ErrOwnerMissing indicates a run was requested without an owner.
	ErrOwnerMissing = errors.New(ownerMissingMessageConstant)
	// ErrGitHubClientNotConfigured indicates the service was built without an API client.
	ErrGitHubClientNotConfigured = errors.New(serviceClientMissingMessageConstant)
)

// RunOptions configures a single enumerate-and-clone run.
type RunOptions struct {
	Owner                string
	AccountType          githubapi.AccountType
	DestinationDirectory string
	ConcurrencyLimit     int
	MaxPages             int
	PerPage              int
	SkipArchived         bool
}

// RunResult summarizes a completed run.
type RunResult struct {
	Owner                string
	AccountType          githubapi.AccountType
	DestinationDirectory string
	Repositories         []githubapi.Repository
	SkippedArchived      int
	Report               CloneReport
}

// Service resolves the owner, lists its repositories, and dispatches clones.
type Service struct {
	logger     *zap.Logger
	client     *githubapi.Client
	resolver   *githubapi.AccountTypeResolver
	dispatcher *Dispatcher
}

// NewService validates dependencies and constructs a Service.
func NewService(logger *zap.Logger, client *githubapi.Client, cloner RepositoryCloner, observer OutcomeObserver) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		return nil, ErrGitHubClientNotConfigured
	}

	resolver, resolverError := githubapi.NewAccountTypeResolver(client)
	if resolverError != nil {
		return nil, resolverError
	}

	dispatcher, dispatcherError := NewDispatcher(logger, cloner, observer)
	if dispatcherError != nil {
		return nil, dispatcherError
	}

	return &Service{logger: logger, client: client, resolver: resolver, dispatcher: dispatcher}, nil
}

// Run executes the workflow. Resolution and listing errors are returned; clone failures are only reported in the result.
func (service *Service) Run(executionContext context.Context, options RunOptions) (RunResult, error) {
	owner := strings.TrimSpace(options.Owner)
	if len(owner) == 0 {
		return RunResult{}, ErrOwnerMissing
	}

	destinationDirectory := strings.TrimSpace(options.DestinationDirectory)
	if len(destinationDirectory) == 0 {
		destinationDirectory = defaultDestinationDirectoryConstant
	}

	accountType, accountTypeError := service.selectAccountType(executionContext, owner, options.AccountType)
	if accountTypeError != nil {
		return RunResult{}, fmt.Errorf(resolveAccountTypeErrorTemplateConstant, owner, accountTypeError)
	}

	repositories, listError := githubapi.FetchAllWithPageSize[githubapi.Repository](
		executionContext,
		service.client,
		githubapi.ListRepositories,
		githubapi.PathParameters{BaseURL: service.client.BaseURL(), Owner: owner, AccountType: accountType},
		options.MaxPages,
		options.PerPage,
	)
	if listError != nil {
		return RunResult{}, fmt.Errorf(listRepositoriesErrorTemplateConstant, owner, listError)
	}
	service.logger.Info(repositoriesListedLogMessageConstant,
		zap.String(logFieldOwnerConstant, owner),
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
	)

	selectedRepositories, skippedCount := filterRepositories(repositories, options.SkipArchived)
	if skippedCount > 0 {
		service.logger.Info(archivedRepositoriesSkippedLogMessage,
			zap.String(logFieldOwnerConstant, owner),
			zap.Int(logFieldSkippedCountConstant, skippedCount),
		)
	}

	if mkdirError := os.MkdirAll(destinationDirectory, destinationDirectoryPermissionsConstant); mkdirError != nil {
		return RunResult{}, fmt.Errorf(createDestinationErrorTemplateConstant, destinationDirectory, mkdirError)
	}

	report := service.dispatcher.CloneAll(executionContext, selectedRepositories, destinationDirectory, options.ConcurrencyLimit)

	return RunResult{
		Owner:                owner,
		AccountType:          accountType,
		DestinationDirectory: destinationDirectory,
		Repositories:         selectedRepositories,
		SkippedArchived:      skippedCount,
		Report:               report,
	}, nil
}

func (service *Service) selectAccountType(executionContext context.Context, owner string, hint githubapi.AccountType) (githubapi.AccountType, error) {
	if hint.IsKnown() {
		service.logAccountType(owner, hint, accountTypeSourceHintConstant)
		return hint, nil
	}

	accountType, resolveError := service.resolver.ResolveAccountType(executionContext, owner)
	if resolveError != nil {
		return githubapi.AccountTypeUnknown, resolveError
	}
	service.logAccountType(owner, accountType, accountTypeSourceProbeConstant)
	return accountType, nil
}

func (service *Service) logAccountType(owner string, accountType githubapi.AccountType, source string) {
	service.logger.Debug(accountTypeResolvedLogMessageConstant,
		zap.String(logFieldOwnerConstant, owner),
		zap.String(logFieldAccountTypeConstant, accountType.String()),
		zap.String(logFieldAccountTypeSourceConstant, source),
	)
}

func filterRepositories(repositories []githubapi.Repository, skipArchived bool) ([]githubapi.Repository, int) {
	if !skipArchived {
		return repositories, 0
	}

	selected := make([]githubapi.Repository, 0, len(repositories))
	for _, repository := range repositories {
		if repository.Archived {
			continue
		}
		selected = append(selected, repository)
	}
	return selected, len(repositories) - len(selected)
}
