package mirror

import (
	"strings"

	"github.com/temirov/ghmirror/internal/githubapi"
)

const (
	githubConfigurationKeyConstant    = "github"
	gogsConfigurationKeyConstant      = "gogs"
	configurationUserKeyConstant      = "user"
	configurationPasswordKeyConstant  = "password"
	configurationAPIURLKeyConstant    = "api_url"
	configurationPageSizeKeyConstant  = "page_size"
	configurationURLKeyConstant       = "url"
	configurationWithForksKeyConstant = "with_forks"
	configurationDryRunKeyConstant    = "dry_run"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures persisted configuration for the mirror command.
type CommandConfiguration struct {
	GitHub    GitHubConfiguration `mapstructure:"github"`
	Gogs      GogsConfiguration   `mapstructure:"gogs"`
	WithForks bool                `mapstructure:"with_forks"`
	DryRun    bool                `mapstructure:"dry_run"`
}

// GitHubConfiguration describes the source account.
type GitHubConfiguration struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	APIURL   string `mapstructure:"api_url"`
	PageSize int    `mapstructure:"page_size"`
}

// GogsConfiguration describes the target account.
type GogsConfiguration struct {
	URL      string `mapstructure:"url"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DefaultCommandConfiguration returns baseline configuration values for the mirror command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		GitHub: GitHubConfiguration{
			APIURL:   githubapi.DefaultAPIURL,
			PageSize: githubapi.DefaultPageSize,
		},
		WithForks: false,
		DryRun:    false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the mirror command beneath rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	githubKey := joinConfigurationKey(rootKey, githubConfigurationKeyConstant)
	gogsKey := joinConfigurationKey(rootKey, gogsConfigurationKeyConstant)
	return map[string]any{
		joinConfigurationKey(githubKey, configurationUserKeyConstant):     defaults.GitHub.User,
		joinConfigurationKey(githubKey, configurationPasswordKeyConstant): defaults.GitHub.Password,
		joinConfigurationKey(githubKey, configurationAPIURLKeyConstant):   defaults.GitHub.APIURL,
		joinConfigurationKey(githubKey, configurationPageSizeKeyConstant): defaults.GitHub.PageSize,
		joinConfigurationKey(gogsKey, configurationURLKeyConstant):        defaults.Gogs.URL,
		joinConfigurationKey(gogsKey, configurationUserKeyConstant):       defaults.Gogs.User,
		joinConfigurationKey(gogsKey, configurationPasswordKeyConstant):   defaults.Gogs.Password,
		joinConfigurationKey(rootKey, configurationWithForksKeyConstant):  defaults.WithForks,
		joinConfigurationKey(rootKey, configurationDryRunKeyConstant):     defaults.DryRun,
	}
}

// Sanitize trims identifiers and URLs. Passwords are kept verbatim.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.GitHub.User = strings.TrimSpace(configuration.GitHub.User)
	sanitized.GitHub.APIURL = strings.TrimSpace(configuration.GitHub.APIURL)
	if len(sanitized.GitHub.APIURL) == 0 {
		sanitized.GitHub.APIURL = githubapi.DefaultAPIURL
	}
	if sanitized.GitHub.PageSize == 0 {
		sanitized.GitHub.PageSize = githubapi.DefaultPageSize
	}
	sanitized.Gogs.URL = strings.TrimSpace(configuration.Gogs.URL)
	sanitized.Gogs.User = strings.TrimSpace(configuration.Gogs.User)
	return sanitized
}

func joinConfigurationKey(prefix string, key string) string {
	if len(prefix) == 0 {
		return key
	}
	return prefix + configurationKeySeparatorConstant + key
}
