package mirror

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/ghmirror/internal/credentials"
	"github.com/temirov/ghmirror/internal/githubapi"
	"github.com/temirov/ghmirror/internal/gogs"
)

const (
	commandUseConstant                 = "ghmirror"
	commandShortDescriptionConstant    = "Mirror GitHub repositories into a Gogs server"
	commandLongDescriptionConstant     = "ghmirror lists the repositories owned by a GitHub account and asks a Gogs server to create a pull mirror for each of them."
	githubUserFlagNameConstant         = "gh-user"
	githubUserFlagUsageConstant        = "GitHub account whose repositories are mirrored"
	githubPasswordFlagNameConstant     = "gh-pass"
	githubPasswordFlagUsageConstant    = "GitHub password or token (prompted when omitted)"
	githubAPIURLFlagNameConstant       = "github-api-url"
	githubAPIURLFlagUsageConstant      = "GitHub REST API base URL"
	pageSizeFlagNameConstant           = "page-size"
	pageSizeFlagUsageConstant          = "Repositories requested per GitHub page (1-100)"
	gogsURLFlagNameConstant            = "gogs-url"
	gogsURLFlagUsageConstant           = "Gogs server URL"
	gogsUserFlagNameConstant           = "gogs-user"
	gogsUserFlagUsageConstant          = "Gogs account that will own the mirrors"
	gogsPasswordFlagNameConstant       = "gogs-pass"
	gogsPasswordFlagUsageConstant      = "Gogs password (prompted when omitted)"
	withForksFlagNameConstant          = "with-forks"
	withForksFlagUsageConstant         = "Mirror forks as well"
	dryRunFlagNameConstant             = "dry-run"
	dryRunFlagUsageConstant            = "Print the mirrors that would be created without creating them"
	githubServiceNameConstant          = "GitHub"
	gogsServiceNameConstant            = "Gogs"
	githubPromptLabelConstant          = "GitHub password: "
	gogsPromptLabelConstant            = "Gogs password: "
	githubUserConfigurationKeyConstant = "github.user"
	gogsURLConfigurationKeyConstant    = "gogs.url"
	gogsUserConfigurationKeyConstant   = "gogs.user"
	missingSettingTemplateConstant     = "--%s is required (or set %s in the configuration)"
	credentialsErrorTemplateConstant   = "unable to resolve credentials: %w"
	sourceListerErrorTemplateConstant  = "unable to construct GitHub client: %w"
	targetClientErrorTemplateConstant  = "unable to construct Gogs client: %w"
	serviceErrorTemplateConstant       = "unable to construct mirror service: %w"
	mirrorRunErrorTemplateConstant     = "mirror run failed: %w"
	mirrorRunFailedMessageConstant     = "Mirror run failed"
	credentialsResolvedMessageConstant = "Credentials resolved"
	logFieldGitHubCredentialsConstant  = "github_credentials"
	logFieldGogsCredentialsConstant    = "gogs_credentials"
	logFieldGogsURLConstant            = "gogs_url"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// SourceDependencies carries what a SourceLister needs.
type SourceDependencies struct {
	Credentials credentials.Credentials
	APIURL      string
	PageSize    int
	Logger      *zap.Logger
}

// TargetDependencies carries what a TargetClient needs.
type TargetDependencies struct {
	Credentials credentials.Credentials
	BaseURL     string
	Logger      *zap.Logger
}

// SourceListerProvider constructs a SourceLister.
type SourceListerProvider func(dependencies SourceDependencies) (SourceLister, error)

// TargetClientProvider constructs a TargetClient.
type TargetClientProvider func(dependencies TargetDependencies) (TargetClient, error)

// MissingSettingError reports a required value absent from both flags and configuration.
type MissingSettingError struct {
	FlagName         string
	ConfigurationKey string
}

// Error describes the missing value.
func (missingError MissingSettingError) Error() string {
	return fmt.Sprintf(missingSettingTemplateConstant, missingError.FlagName, missingError.ConfigurationKey)
}

// CommandBuilder assembles the mirror Cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	PasswordPrompter      credentials.PasswordPrompter
	EnvironmentLookup     credentials.EnvironmentLookup
	SourceListerProvider  SourceListerProvider
	TargetClientProvider  TargetClientProvider
}

// Build constructs the mirror command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.run,
	}

	flagSet := command.Flags()
	flagSet.String(githubUserFlagNameConstant, "", githubUserFlagUsageConstant)
	flagSet.String(githubPasswordFlagNameConstant, "", githubPasswordFlagUsageConstant)
	flagSet.String(githubAPIURLFlagNameConstant, githubapi.DefaultAPIURL, githubAPIURLFlagUsageConstant)
	flagSet.Int(pageSizeFlagNameConstant, githubapi.DefaultPageSize, pageSizeFlagUsageConstant)
	flagSet.String(gogsURLFlagNameConstant, "", gogsURLFlagUsageConstant)
	flagSet.String(gogsUserFlagNameConstant, "", gogsUserFlagUsageConstant)
	flagSet.String(gogsPasswordFlagNameConstant, "", gogsPasswordFlagUsageConstant)
	flagSet.Bool(withForksFlagNameConstant, false, withForksFlagUsageConstant)
	flagSet.Bool(dryRunFlagNameConstant, false, dryRunFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	githubCredentials, gogsCredentials, credentialsError := builder.resolveCredentials(command, configuration)
	if credentialsError != nil {
		return fmt.Errorf(credentialsErrorTemplateConstant, credentialsError)
	}

	logger.Debug(
		credentialsResolvedMessageConstant,
		zap.Stringer(logFieldGitHubCredentialsConstant, githubCredentials),
		zap.Stringer(logFieldGogsCredentialsConstant, gogsCredentials),
		zap.String(logFieldGogsURLConstant, configuration.Gogs.URL),
	)

	sourceLister, sourceListerError := builder.resolveSourceLister(SourceDependencies{
		Credentials: githubCredentials,
		APIURL:      configuration.GitHub.APIURL,
		PageSize:    configuration.GitHub.PageSize,
		Logger:      logger,
	})
	if sourceListerError != nil {
		return fmt.Errorf(sourceListerErrorTemplateConstant, sourceListerError)
	}

	targetClient, targetClientError := builder.resolveTargetClient(TargetDependencies{
		Credentials: gogsCredentials,
		BaseURL:     configuration.Gogs.URL,
		Logger:      logger,
	})
	if targetClientError != nil {
		return fmt.Errorf(targetClientErrorTemplateConstant, targetClientError)
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:       logger,
		SourceLister: sourceLister,
		TargetClient: targetClient,
		Reporter:     NewWriterReporter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return fmt.Errorf(serviceErrorTemplateConstant, serviceError)
	}

	_, executionError := service.Execute(command.Context(), Options{
		AccountLogin: githubCredentials.Username(),
		IncludeForks: configuration.WithForks,
		DryRun:       configuration.DryRun,
	})
	if executionError != nil {
		logger.Error(mirrorRunFailedMessageConstant, zap.Error(executionError))
		return fmt.Errorf(mirrorRunErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandConfiguration, error) {
	configuration := builder.resolveConfiguration()

	if command != nil {
		flagSet := command.Flags()
		overrideStringFromFlag(flagSet, githubUserFlagNameConstant, &configuration.GitHub.User)
		overrideStringFromFlag(flagSet, githubPasswordFlagNameConstant, &configuration.GitHub.Password)
		overrideStringFromFlag(flagSet, githubAPIURLFlagNameConstant, &configuration.GitHub.APIURL)
		overrideStringFromFlag(flagSet, gogsURLFlagNameConstant, &configuration.Gogs.URL)
		overrideStringFromFlag(flagSet, gogsUserFlagNameConstant, &configuration.Gogs.User)
		overrideStringFromFlag(flagSet, gogsPasswordFlagNameConstant, &configuration.Gogs.Password)
		overrideBoolFromFlag(flagSet, withForksFlagNameConstant, &configuration.WithForks)
		overrideBoolFromFlag(flagSet, dryRunFlagNameConstant, &configuration.DryRun)
		overrideIntFromFlag(flagSet, pageSizeFlagNameConstant, &configuration.GitHub.PageSize)
	}

	configuration = configuration.Sanitize()

	if len(configuration.GitHub.User) == 0 {
		return CommandConfiguration{}, MissingSettingError{FlagName: githubUserFlagNameConstant, ConfigurationKey: githubUserConfigurationKeyConstant}
	}
	if len(configuration.Gogs.URL) == 0 {
		return CommandConfiguration{}, MissingSettingError{FlagName: gogsURLFlagNameConstant, ConfigurationKey: gogsURLConfigurationKeyConstant}
	}
	if len(configuration.Gogs.User) == 0 {
		return CommandConfiguration{}, MissingSettingError{FlagName: gogsUserFlagNameConstant, ConfigurationKey: gogsUserConfigurationKeyConstant}
	}

	return configuration, nil
}

func (builder *CommandBuilder) resolveCredentials(command *cobra.Command, configuration CommandConfiguration) (credentials.Credentials, credentials.Credentials, error) {
	prompter := builder.PasswordPrompter
	if prompter == nil {
		prompter = credentials.NewIOPasswordPrompter(command.InOrStdin(), command.ErrOrStderr())
	}

	environmentLookup := builder.EnvironmentLookup
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}

	resolver, resolverError := credentials.NewResolver(prompter, environmentLookup)
	if resolverError != nil {
		return credentials.Credentials{}, credentials.Credentials{}, resolverError
	}

	githubCredentials, githubError := resolver.Resolve(credentials.Request{
		ServiceName:          githubServiceNameConstant,
		Username:             configuration.GitHub.User,
		Password:             configuration.GitHub.Password,
		PromptLabel:          githubPromptLabelConstant,
		TokenEnvironmentKeys: credentials.GitHubTokenEnvironmentKeys,
	})
	if githubError != nil {
		return credentials.Credentials{}, credentials.Credentials{}, githubError
	}

	gogsCredentials, gogsError := resolver.Resolve(credentials.Request{
		ServiceName: gogsServiceNameConstant,
		Username:    configuration.Gogs.User,
		Password:    configuration.Gogs.Password,
		PromptLabel: gogsPromptLabelConstant,
	})
	if gogsError != nil {
		return credentials.Credentials{}, credentials.Credentials{}, gogsError
	}

	return githubCredentials, gogsCredentials, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveSourceLister(dependencies SourceDependencies) (SourceLister, error) {
	if builder.SourceListerProvider != nil {
		return builder.SourceListerProvider(dependencies)
	}
	return githubapi.NewLister(githubapi.ListerOptions{
		Credentials: dependencies.Credentials,
		APIURL:      dependencies.APIURL,
		PageSize:    dependencies.PageSize,
		Logger:      dependencies.Logger,
	})
}

func (builder *CommandBuilder) resolveTargetClient(dependencies TargetDependencies) (TargetClient, error) {
	if builder.TargetClientProvider != nil {
		return builder.TargetClientProvider(dependencies)
	}
	return gogs.NewClient(gogs.ClientOptions{
		BaseURL:     dependencies.BaseURL,
		Credentials: dependencies.Credentials,
		Logger:      dependencies.Logger,
	})
}

func overrideStringFromFlag(flagSet *pflag.FlagSet, flagName string, target *string) {
	if flagSet == nil || !flagSet.Changed(flagName) {
		return
	}
	flagValue, flagError := flagSet.GetString(flagName)
	if flagError != nil {
		return
	}
	*target = flagValue
}

func overrideBoolFromFlag(flagSet *pflag.FlagSet, flagName string, target *bool) {
	if flagSet == nil || !flagSet.Changed(flagName) {
		return
	}
	flagValue, flagError := flagSet.GetBool(flagName)
	if flagError != nil {
		return
	}
	*target = flagValue
}

func overrideIntFromFlag(flagSet *pflag.FlagSet, flagName string, target *int) {
	if flagSet == nil || !flagSet.Changed(flagName) {
		return
	}
	flagValue, flagError := flagSet.GetInt(flagName)
	if flagError != nil {
		return
	}
	*target = flagValue
}
