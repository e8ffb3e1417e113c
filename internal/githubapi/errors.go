package githubapi

import "fmt"

const (
	invalidInputErrorTemplateConstant      = "%s: %s"
	authenticationErrorTemplateConstant    = "github rejected credentials for %s (status %d)"
	operationErrorTemplateConstant         = "github repository listing failed on page %d: %s"
	malformedResponseErrorTemplateConstant = "github returned a malformed repository on page %d: missing %s"
	malformedPayloadErrorTemplateConstant  = "github returned a malformed page %d: %s"
)

// InvalidInputError surfaces validation issues for lister options.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// AuthenticationError reports credentials rejected by GitHub.
type AuthenticationError struct {
	Username   string
	StatusCode int
	Cause      error
}

// Error describes the rejected credentials.
func (authenticationError AuthenticationError) Error() string {
	return fmt.Sprintf(authenticationErrorTemplateConstant, authenticationError.Username, authenticationError.StatusCode)
}

// Unwrap exposes the underlying API error.
func (authenticationError AuthenticationError) Unwrap() error {
	return authenticationError.Cause
}

// OperationError wraps transport failures and unexpected API responses.
type OperationError struct {
	Page  int
	Cause error
}

// Error describes the failed page request.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Page, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// MalformedResponseError indicates a page body that cannot be turned into repository records.
type MalformedResponseError struct {
	Page      int
	FieldName string
	Cause     error
}

// Error describes the malformed payload.
func (malformedError MalformedResponseError) Error() string {
	if malformedError.Cause != nil {
		return fmt.Sprintf(malformedPayloadErrorTemplateConstant, malformedError.Page, malformedError.Cause)
	}
	return fmt.Sprintf(malformedResponseErrorTemplateConstant, malformedError.Page, malformedError.FieldName)
}

// Unwrap exposes the decoding error, when any.
func (malformedError MalformedResponseError) Unwrap() error {
	return malformedError.Cause
}
