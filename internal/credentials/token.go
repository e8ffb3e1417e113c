package credentials

import "strings"

// Environment variable names consulted for a GitHub token when no password is configured.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

// GitHubTokenEnvironmentKeys lists the token variables in order of preference.
var GitHubTokenEnvironmentKeys = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// EnvironmentLookup reports the value of an environment variable.
type EnvironmentLookup func(key string) (string, bool)

func lookupToken(environmentLookup EnvironmentLookup, keys []string) (string, bool) {
	if environmentLookup == nil {
		return "", false
	}
	for _, key := range keys {
		value, exists := environmentLookup(key)
		if !exists {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) == 0 {
			continue
		}
		return value, true
	}
	return "", false
}
