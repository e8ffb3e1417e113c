package credentials

import (
	"errors"
	"fmt"
	"strings"
)

const (
	prompterNotConfiguredMessageConstant = "password prompter not configured"
	usernameRequiredTemplateConstant     = "%s username required"
	promptFailureTemplateConstant        = "unable to read %s password: %w"
)

var (
	// ErrPrompterNotConfigured indicates the resolver was constructed without a prompter.
	ErrPrompterNotConfigured = errors.New(prompterNotConfiguredMessageConstant)
)

// MissingUsernameError reports a credential request without an account name.
type MissingUsernameError struct {
	ServiceName string
}

// Error describes the missing username.
func (missingError MissingUsernameError) Error() string {
	return fmt.Sprintf(usernameRequiredTemplateConstant, missingError.ServiceName)
}

// Request describes one credential pair to resolve.
type Request struct {
	ServiceName          string
	Username             string
	Password             string
	PromptLabel          string
	TokenEnvironmentKeys []string
}

// Resolver turns partially configured credentials into complete ones.
type Resolver struct {
	prompter          PasswordPrompter
	environmentLookup EnvironmentLookup
}

// NewResolver constructs a Resolver. environmentLookup may be nil to disable token fallback.
func NewResolver(prompter PasswordPrompter, environmentLookup EnvironmentLookup) (*Resolver, error) {
	if prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	return &Resolver{prompter: prompter, environmentLookup: environmentLookup}, nil
}

// Resolve returns credentials for the request, prompting only when no password
// was configured and no token variable supplies one.
func (resolver *Resolver) Resolve(request Request) (Credentials, error) {
	username := strings.TrimSpace(request.Username)
	if len(username) == 0 {
		return Credentials{}, MissingUsernameError{ServiceName: request.ServiceName}
	}

	if len(request.Password) > 0 {
		return New(username, request.Password), nil
	}

	if token, found := lookupToken(resolver.environmentLookup, request.TokenEnvironmentKeys); found {
		return New(username, token), nil
	}

	password, promptError := resolver.prompter.PromptPassword(request.PromptLabel)
	if promptError != nil {
		return Credentials{}, fmt.Errorf(promptFailureTemplateConstant, request.ServiceName, promptError)
	}

	return New(username, password), nil
}
