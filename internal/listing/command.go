package listing

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/reapclone/internal/githubapi"
	"github.com/temirov/reapclone/internal/githubauth"
	"github.com/temirov/reapclone/internal/utils/flags"
)

const (
	listCommandUseConstant              = "list"
	listCommandShortDescriptionConstant = "List repositories, commits, or branches"
	repositoriesCommandUseConstant      = "repos <owner>"
	repositoriesCommandShortConstant    = "List every repository owned by a user or organisation"
	commitsCommandUseConstant           = "commits <owner> <repository>"
	commitsCommandShortConstant         = "List the commits of a repository"
	branchesCommandUseConstant          = "branches <owner> <repository>"
	branchesCommandShortConstant        = "List the branches of a repository"
	flagOutputNameConstant              = "output"
	flagOutputShorthandConstant         = "O"
	flagOutputDescriptionConstant       = "Output format"
	flagAccountTypeNameConstant         = "account-type"
	flagAccountTypeDescriptionConstant  = "Owner account type (user or organisation); probed when omitted"
	listingCompletedLogMessageConstant  = "listing completed"
	logFieldListingConstant             = "listing"
	logFieldItemCountConstant           = "items"
	repositoriesListingNameConstant     = "repositories"
	commitsListingNameConstant          = "commits"
	branchesListingNameConstant         = "branches"
	repositoryArgumentCountConstant     = 2
	ownerArgumentCountConstant          = 1
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the list command and its subcommands.
type CommandBuilder struct {
	LoggerProvider              LoggerProvider
	ConfigurationProvider       func() CommandConfiguration
	GitHubConfigurationProvider func() githubapi.Configuration
	TokenFlagProvider           func() string
	UserAgent                   string
	EnvironmentLookup           githubauth.EnvironmentLookup
}

// Build constructs the list command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	var outputFormatValue string

	listCommand := &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
	}
	flags.AddChoiceFlag(listCommand.PersistentFlags(), &outputFormatValue, flagOutputNameConstant, flagOutputShorthandConstant, string(OutputFormatTable), OutputFormats(), flagOutputDescriptionConstant)

	repositoriesCommand := &cobra.Command{
		Use:   repositoriesCommandUseConstant,
		Short: repositoriesCommandShortConstant,
		Args:  cobra.ExactArgs(ownerArgumentCountConstant),
		RunE: func(command *cobra.Command, arguments []string) error {
			accountTypeValue, _ := command.Flags().GetString(flagAccountTypeNameConstant)
			accountType := githubapi.AccountTypeUnknown
			if len(strings.TrimSpace(accountTypeValue)) > 0 {
				parsedAccountType, parseError := githubapi.ParseAccountType(accountTypeValue)
				if parseError != nil {
					return parseError
				}
				accountType = parsedAccountType
			}

			return builder.execute(command, outputFormatValue, repositoriesListingNameConstant, func(executionContext context.Context, service *Service, printer Printer) (int, error) {
				repositories, listError := service.ListRepositories(executionContext, arguments[0], accountType)
				if listError != nil {
					return 0, listError
				}
				return len(repositories), printer.PrintRepositories(repositories)
			})
		},
	}
	repositoriesCommand.Flags().String(flagAccountTypeNameConstant, "", flagAccountTypeDescriptionConstant)

	commitsCommand := &cobra.Command{
		Use:   commitsCommandUseConstant,
		Short: commitsCommandShortConstant,
		Args:  cobra.ExactArgs(repositoryArgumentCountConstant),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.execute(command, outputFormatValue, commitsListingNameConstant, func(executionContext context.Context, service *Service, printer Printer) (int, error) {
				commits, listError := service.ListCommits(executionContext, arguments[0], arguments[1])
				if listError != nil {
					return 0, listError
				}
				return len(commits), printer.PrintCommits(commits)
			})
		},
	}

	branchesCommand := &cobra.Command{
		Use:   branchesCommandUseConstant,
		Short: branchesCommandShortConstant,
		Args:  cobra.ExactArgs(repositoryArgumentCountConstant),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.execute(command, outputFormatValue, branchesListingNameConstant, func(executionContext context.Context, service *Service, printer Printer) (int, error) {
				branches, listError := service.ListBranches(executionContext, arguments[0], arguments[1])
				if listError != nil {
					return 0, listError
				}
				return len(branches), printer.PrintBranches(branches)
			})
		},
	}

	listCommand.AddCommand(repositoriesCommand, commitsCommand, branchesCommand)
	return listCommand, nil
}

type listingAction func(executionContext context.Context, service *Service, printer Printer) (int, error)

func (builder *CommandBuilder) execute(command *cobra.Command, outputFlagValue string, listingName string, action listingAction) error {
	outputFormat, formatError := builder.resolveOutputFormat(command, outputFlagValue)
	if formatError != nil {
		return formatError
	}

	logger := builder.resolveLogger()
	githubConfiguration := builder.resolveGitHubConfiguration()
	clientFactory := githubauth.ClientFactory{
		Resolver:  githubauth.NewCredentialResolver(builder.EnvironmentLookup),
		UserAgent: builder.UserAgent,
		Logger:    logger,
	}
	client, clientError := clientFactory.NewClient(githubConfiguration, builder.resolveTokenFlag())
	if clientError != nil {
		return clientError
	}

	service, serviceError := NewService(client, githubConfiguration.MaxPages, githubConfiguration.PerPage)
	if serviceError != nil {
		return serviceError
	}

	itemCount, actionError := action(command.Context(), service, NewPrinter(command.OutOrStdout(), outputFormat))
	if actionError != nil {
		return actionError
	}

	logger.Debug(listingCompletedLogMessageConstant,
		zap.String(logFieldListingConstant, listingName),
		zap.Int(logFieldItemCountConstant, itemCount),
	)
	return nil
}

func (builder *CommandBuilder) resolveOutputFormat(command *cobra.Command, outputFlagValue string) (OutputFormat, error) {
	if command.Flags().Changed(flagOutputNameConstant) {
		return ParseOutputFormat(outputFlagValue)
	}
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return ParseOutputFormat(configuration.sanitize().Output)
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
