package cloning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/reapclone/internal/execshell"
	"github.com/temirov/reapclone/internal/githubapi"
	"github.com/temirov/reapclone/internal/githubauth"
	"github.com/temirov/reapclone/internal/utils"
	pathutils "github.com/temirov/reapclone/internal/utils/path"
)

const (
	commandUseConstant                    = "clone [owner]"
	commandShortDescriptionConstant       = "Clone every repository of a GitHub user or organisation"
	commandLongDescriptionConstant        = "clone lists all repositories owned by a GitHub user or organisation and clones them into the destination directory, running up to --concurrency git processes at once."
	commandExecutionErrorTemplateConstant = "clone failed: %w"
	flagUserNameConstant                  = "user"
	flagUserShorthandConstant             = "u"
	flagUserDescriptionConstant           = "GitHub user whose repositories should be cloned"
	flagOrganisationNameConstant          = "organisation"
	flagOrganisationShorthandConstant     = "o"
	flagOrganisationDescriptionConstant   = "GitHub organisation whose repositories should be cloned"
	flagDestinationNameConstant           = "destination"
	flagDestinationShorthandConstant      = "d"
	flagDestinationDescriptionConstant    = "Directory the repositories are cloned into"
	flagConcurrencyNameConstant           = "concurrency"
	flagConcurrencyShorthandConstant      = "c"
	flagConcurrencyDescriptionConstant    = "Maximum number of simultaneous clones"
	flagSkipArchivedNameConstant          = "skip-archived"
	flagSkipArchivedDescriptionConstant   = "Do not clone archived repositories"
	conflictingOwnersMessageConstant      = "specify the owner once: use --user, --organisation, or a positional owner"
	missingOwnerMessageConstant           = "an owner is required: use --user, --organisation, a positional owner, or clone.owner in configuration"
	cloneSummaryTemplateConstant          = "cloned %d of %d repositories into %s\n"
	runCompletedLogMessageConstant        = "clone run completed"
	logFieldConfigurationFileConstant     = "config_file"
)

var (
	// ErrConflictingOwners indicates more than one owner source was supplied on the command line.
	ErrConflictingOwners = errors.New(conflictingOwnersMessageConstant)
	errMissingOwner      = errors.New(missingOwnerMessageConstant)
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the clone workflow as a cobra command.
type CommandBuilder struct {
	LoggerProvider              LoggerProvider
	ConfigurationProvider       func() CommandConfiguration
	GitHubConfigurationProvider func() githubapi.Configuration
	TokenFlagProvider           func() string
	UserAgent                   string
	EnvironmentLookup           githubauth.EnvironmentLookup
	Cloner                      RepositoryCloner
	HomeExpander                *pathutils.HomeExpander
}

// Build constructs the clone subcommand.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
	}
	builder.Configure(command)
	return command, nil
}

// Configure registers clone flags and the clone action on an existing command, such as the root command.
func (builder *CommandBuilder) Configure(command *cobra.Command) {
	command.Args = cobra.MaximumNArgs(1)
	command.RunE = builder.run

	command.Flags().StringP(flagUserNameConstant, flagUserShorthandConstant, "", flagUserDescriptionConstant)
	command.Flags().StringP(flagOrganisationNameConstant, flagOrganisationShorthandConstant, "", flagOrganisationDescriptionConstant)
	command.Flags().StringP(flagDestinationNameConstant, flagDestinationShorthandConstant, "", flagDestinationDescriptionConstant)
	command.Flags().IntP(flagConcurrencyNameConstant, flagConcurrencyShorthandConstant, 0, flagConcurrencyDescriptionConstant)
	command.Flags().Bool(flagSkipArchivedNameConstant, false, flagSkipArchivedDescriptionConstant)
	command.MarkFlagsMutuallyExclusive(flagUserNameConstant, flagOrganisationNameConstant)
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	githubConfiguration := builder.resolveGitHubConfiguration()
	options.MaxPages = githubConfiguration.MaxPages
	options.PerPage = githubConfiguration.PerPage

	clientFactory := githubauth.ClientFactory{
		Resolver:  githubauth.NewCredentialResolver(builder.EnvironmentLookup),
		UserAgent: builder.UserAgent,
		Logger:    logger,
	}
	client, clientError := clientFactory.NewClient(githubConfiguration, builder.resolveTokenFlag())
	if clientError != nil {
		return clientError
	}

	cloner, clonerError := builder.resolveCloner(logger)
	if clonerError != nil {
		return clonerError
	}

	linePrinter := NewOutcomeLinePrinter(utils.NewFlushingWriter(command.OutOrStdout()), utils.NewFlushingWriter(command.ErrOrStderr()))
	service, serviceError := NewService(logger, client, cloner, linePrinter)
	if serviceError != nil {
		return serviceError
	}

	runResult, runError := service.Run(command.Context(), options)
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Info(runCompletedLogMessageConstant,
		zap.String(logFieldOwnerConstant, runResult.Owner),
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
		zap.String(logFieldAccountTypeConstant, runResult.AccountType.String()),
		zap.Int(logFieldSucceededCountConstant, runResult.Report.SucceededCount()),
		zap.Int(logFieldFailedCountConstant, runResult.Report.FailedCount()),
		zap.Int(logFieldSkippedCountConstant, runResult.SkippedArchived),
	)
	_, _ = fmt.Fprintf(command.ErrOrStderr(), cloneSummaryTemplateConstant, runResult.Report.SucceededCount(), len(runResult.Report.Outcomes), runResult.DestinationDirectory)
	runResult.Report.WriteFailureDetails(command.ErrOrStderr())

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (RunOptions, error) {
	configuration := builder.resolveConfiguration()

	userValue, _ := command.Flags().GetString(flagUserNameConstant)
	organisationValue, _ := command.Flags().GetString(flagOrganisationNameConstant)

	ownerCandidates := make([]RunOptions, 0, 3)
	if trimmedUser := strings.TrimSpace(userValue); len(trimmedUser) > 0 {
		ownerCandidates = append(ownerCandidates, RunOptions{Owner: trimmedUser, AccountType: githubapi.AccountTypeUser})
	}
	if trimmedOrganisation := strings.TrimSpace(organisationValue); len(trimmedOrganisation) > 0 {
		ownerCandidates = append(ownerCandidates, RunOptions{Owner: trimmedOrganisation, AccountType: githubapi.AccountTypeOrganisation})
	}
	if len(arguments) > 0 {
		if trimmedArgument := strings.TrimSpace(arguments[0]); len(trimmedArgument) > 0 {
			ownerCandidates = append(ownerCandidates, RunOptions{Owner: trimmedArgument})
		}
	}

	var options RunOptions
	switch len(ownerCandidates) {
	case 0:
		if len(configuration.Owner) == 0 {
			return RunOptions{}, errMissingOwner
		}
		options = RunOptions{Owner: configuration.Owner, AccountType: configuration.AccountType}
	case 1:
		options = ownerCandidates[0]
	default:
		return RunOptions{}, ErrConflictingOwners
	}

	options.DestinationDirectory = configuration.Destination
	if command.Flags().Changed(flagDestinationNameConstant) {
		destinationValue, _ := command.Flags().GetString(flagDestinationNameConstant)
		options.DestinationDirectory = strings.TrimSpace(destinationValue)
	}
	resolvedDestination, destinationError := builder.resolveHomeExpander().ResolveDirectory(options.DestinationDirectory)
	if destinationError != nil {
		return RunOptions{}, destinationError
	}
	options.DestinationDirectory = resolvedDestination

	options.ConcurrencyLimit = configuration.Concurrency
	if command.Flags().Changed(flagConcurrencyNameConstant) {
		concurrencyValue, _ := command.Flags().GetInt(flagConcurrencyNameConstant)
		options.ConcurrencyLimit = concurrencyValue
	}

	options.SkipArchived = configuration.SkipArchived
	if command.Flags().Changed(flagSkipArchivedNameConstant) {
		skipArchivedValue, _ := command.Flags().GetBool(flagSkipArchivedNameConstant)
		options.SkipArchived = skipArchivedValue
	}

	return options, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveGitHubConfiguration() githubapi.Configuration {
	if builder.GitHubConfigurationProvider == nil {
		return githubapi.DefaultConfiguration()
	}
	return builder.GitHubConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveTokenFlag() string {
	if builder.TokenFlagProvider == nil {
		return ""
	}
	return builder.TokenFlagProvider()
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander == nil {
		return pathutils.NewHomeExpander()
	}
	return builder.HomeExpander
}

func (builder *CommandBuilder) resolveCloner(logger *zap.Logger) (RepositoryCloner, error) {
	if builder.Cloner != nil {
		return builder.Cloner, nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}

	return NewGitCloner(shellExecutor.WithObserver(execshell.NewDurationObserver(logger)))
}
