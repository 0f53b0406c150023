package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/reapclone/internal/cloning"
	"github.com/temirov/reapclone/internal/githubapi"
	"github.com/temirov/reapclone/internal/githubauth"
	"github.com/temirov/reapclone/internal/listing"
	"github.com/temirov/reapclone/internal/utils"
)

const (
	applicationNameConstant                 = "reapclone"
	applicationUseConstant                  = applicationNameConstant + " [owner]"
	applicationShortDescriptionConstant     = "Clone every repository of a GitHub user or organisation"
	applicationLongDescriptionConstant      = "reapclone lists all repositories owned by a GitHub user or organisation and clones them concurrently, printing one url|SUCCESS or url|FAIL line per repository."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level (debug, info, warn, error)."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	hostFlagNameConstant                    = "host"
	hostFlagUsageConstant                   = "GitHub Enterprise host; github.com is used when empty."
	tokenFlagNameConstant                   = "token"
	tokenFlagUsageConstant                  = "GitHub token; overrides configuration and GH_TOKEN, GITHUB_TOKEN, GITHUB_API_TOKEN."
	maxPagesFlagNameConstant                = "max-pages"
	maxPagesFlagUsageConstant               = "Maximum number of listing pages requested per endpoint."
	perPageFlagNameConstant                 = "per-page"
	perPageFlagUsageConstant                = "Number of items requested per listing page."
	httpTimeoutFlagNameConstant             = "http-timeout"
	httpTimeoutFlagUsageConstant            = "Timeout applied to each GitHub API request."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	githubConfigurationKeyConstant          = "github"
	cloneConfigurationKeyConstant           = "clone"
	listConfigurationKeyConstant            = "list"
	environmentPrefixConstant               = "REAPCLONE"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationHostFieldConstant          = "github_host"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryNameConstant  = ".reapclone"
)

// Version identifies the build and is reported through --version and the User-Agent header.
// Release builds override it with -ldflags "-X github.com/temirov/reapclone/cmd/cli.Version=<version>".
var Version = "dev"

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	GitHub githubapi.Configuration        `mapstructure:"github"`
	Clone  cloning.CommandConfiguration   `mapstructure:"clone"`
	List   listing.CommandConfiguration   `mapstructure:"list"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationDependencies replaces collaborators that default to the operating system.
// Zero values select the production implementations.
type ApplicationDependencies struct {
	Cloner            cloning.RepositoryCloner
	EnvironmentLookup githubauth.EnvironmentLookup
	LogOutput         zapcore.WriteSyncer
	SearchPaths       []string
}

type githubFlagValues struct {
	host        string
	token       string
	maxPages    int
	perPage     int
	httpTimeout time.Duration
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	logOutput              zapcore.WriteSyncer
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	githubFlags            githubFlagValues
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	application, _ := NewApplicationWithDependencies(ApplicationDependencies{})
	return application
}

// NewApplicationWithDependencies assembles the CLI around the supplied collaborators.
func NewApplicationWithDependencies(dependencies ApplicationDependencies) (*Application, error) {
	searchPaths := dependencies.SearchPaths
	if searchPaths == nil {
		searchPaths = defaultConfigurationSearchPaths()
	}

	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		searchPaths,
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	logOutput := dependencies.LogOutput
	if logOutput == nil {
		logOutput = zapcore.Lock(os.Stderr)
	}

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		logOutput:              logOutput,
		configuration:          defaultApplicationConfiguration(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationUseConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	persistentFlags.StringVar(&application.githubFlags.host, hostFlagNameConstant, "", hostFlagUsageConstant)
	persistentFlags.StringVar(&application.githubFlags.token, tokenFlagNameConstant, "", tokenFlagUsageConstant)
	persistentFlags.IntVar(&application.githubFlags.maxPages, maxPagesFlagNameConstant, githubapi.DefaultMaxPages, maxPagesFlagUsageConstant)
	persistentFlags.IntVar(&application.githubFlags.perPage, perPageFlagNameConstant, githubapi.DefaultPerPage, perPageFlagUsageConstant)
	persistentFlags.DurationVar(&application.githubFlags.httpTimeout, httpTimeoutFlagNameConstant, githubapi.DefaultConfiguration().HTTPTimeout, httpTimeoutFlagUsageConstant)

	userAgent := githubapi.UserAgentForVersion(Version)
	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	githubConfigurationProvider := func() githubapi.Configuration {
		return application.configuration.GitHub
	}
	tokenFlagProvider := func() string {
		return application.githubFlags.token
	}

	cloningBuilder := cloning.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() cloning.CommandConfiguration {
			return application.configuration.Clone
		},
		GitHubConfigurationProvider: githubConfigurationProvider,
		TokenFlagProvider:           tokenFlagProvider,
		UserAgent:                   userAgent,
		EnvironmentLookup:           dependencies.EnvironmentLookup,
		Cloner:                      dependencies.Cloner,
	}
	cloningBuilder.Configure(cobraCommand)

	cloneCommand, cloneBuildError := cloningBuilder.Build()
	if cloneBuildError != nil {
		return nil, fmt.Errorf(commandBuildErrorTemplateConstant, cloneConfigurationKeyConstant, cloneBuildError)
	}
	cobraCommand.AddCommand(cloneCommand)

	listingBuilder := listing.CommandBuilder{
		LoggerProvider: listing.LoggerProvider(loggerProvider),
		ConfigurationProvider: func() listing.CommandConfiguration {
			return application.configuration.List
		},
		GitHubConfigurationProvider: githubConfigurationProvider,
		TokenFlagProvider:           tokenFlagProvider,
		UserAgent:                   userAgent,
		EnvironmentLookup:           dependencies.EnvironmentLookup,
	}
	listCommand, listBuildError := listingBuilder.Build()
	if listBuildError != nil {
		return nil, fmt.Errorf(commandBuildErrorTemplateConstant, listConfigurationKeyConstant, listBuildError)
	}
	cobraCommand.AddCommand(listCommand)

	application.rootCommand = cobraCommand

	return application, nil
}

// SetOutput redirects command output. Outcome lines and listings go to standardOutput.
func (application *Application) SetOutput(standardOutput io.Writer, standardError io.Writer) {
	application.rootCommand.SetOut(standardOutput)
	application.rootCommand.SetErr(standardError)
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := utils.SyncLogger(application.logger); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// ExecuteWithArguments runs the command hierarchy with explicit arguments instead of os.Args.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	if arguments == nil {
		arguments = []string{}
	}
	application.rootCommand.SetArgs(arguments)
	return application.Execute()
}

// Configuration returns the configuration resolved by the last command invocation.
func (application *Application) Configuration() ApplicationConfiguration {
	return application.configuration
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range githubapi.DefaultConfigurationValues(githubConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range cloning.DefaultConfigurationValues(cloneConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range listing.DefaultConfigurationValues(listConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration := ApplicationConfiguration{}
	configurationMetadata, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &loadedConfiguration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configuration = loadedConfiguration
	application.configurationMetadata = configurationMetadata
	application.applyFlagOverrides(command)

	logger, loggerCreationError := application.loggerFactory.CreateLoggerWithOutput(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
		application.logOutput,
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationHostFieldConstant, application.configuration.GitHub.Host),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
	}

	return nil
}

func (application *Application) applyFlagOverrides(command *cobra.Command) {
	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, hostFlagNameConstant) {
		application.configuration.GitHub.Host = application.githubFlags.host
	}
	if application.persistentFlagChanged(command, maxPagesFlagNameConstant) {
		application.configuration.GitHub.MaxPages = application.githubFlags.maxPages
	}
	if application.persistentFlagChanged(command, perPageFlagNameConstant) {
		application.configuration.GitHub.PerPage = application.githubFlags.perPage
	}
	if application.persistentFlagChanged(command, httpTimeoutFlagNameConstant) {
		application.configuration.GitHub.HTTPTimeout = application.githubFlags.httpTimeout
	}
	application.configuration.GitHub = application.configuration.GitHub.Sanitize()
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.Flags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func defaultApplicationConfiguration() ApplicationConfiguration {
	return ApplicationConfiguration{
		Common: ApplicationCommonConfiguration{
			LogLevel:  string(utils.LogLevelInfo),
			LogFormat: string(utils.LogFormatStructured),
		},
		GitHub: githubapi.DefaultConfiguration(),
		Clone:  cloning.DefaultCommandConfiguration(),
		List:   listing.DefaultCommandConfiguration(),
	}
}

func defaultConfigurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if homeDirectory, homeDirectoryError := os.UserHomeDir(); homeDirectoryError == nil && len(homeDirectory) > 0 {
		searchPaths = append(searchPaths, filepath.Join(homeDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}
