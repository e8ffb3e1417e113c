package credentials

import "fmt"

const (
	redactedPasswordConstant           = "***"
	credentialsDisplayTemplateConstant = "%s:%s"
	emptyPasswordDisplayConstant       = "<empty>"
)

// Credentials is an immutable username and password pair held only in memory.
type Credentials struct {
	username string
	password string
}

// New constructs a Credentials value.
func New(username string, password string) Credentials {
	return Credentials{username: username, password: password}
}

// Username returns the account name.
func (credentials Credentials) Username() string {
	return credentials.username
}

// Password returns the secret.
func (credentials Credentials) Password() string {
	return credentials.password
}

// String renders the credentials without exposing the password.
func (credentials Credentials) String() string {
	if len(credentials.password) == 0 {
		return fmt.Sprintf(credentialsDisplayTemplateConstant, credentials.username, emptyPasswordDisplayConstant)
	}
	return fmt.Sprintf(credentialsDisplayTemplateConstant, credentials.username, redactedPasswordConstant)
}
