package gogs

import "fmt"

const (
	invalidInputErrorTemplateConstant       = "%s: %s"
	authenticationErrorTemplateConstant     = "gogs rejected credentials for %s (status %d)"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	malformedResponseErrorTemplateConstant  = "%s returned a malformed response: %s"
	unexpectedStatusErrorTemplateConstant   = "unexpected status %d"
	payloadEncodingErrorTemplateConstant    = "%s payload encoding failed: %s"
)

// OperationName describes a named Gogs API workflow supported by the client.
type OperationName string

const (
	resolveOwnerOperationNameConstant = OperationName("ResolveOwnerID")
	createMirrorOperationNameConstant = OperationName("CreateMirror")
)

// InvalidInputError surfaces validation issues for client options and inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// AuthenticationError reports credentials rejected by the Gogs server.
type AuthenticationError struct {
	Username   string
	StatusCode int
}

// Error describes the rejected credentials.
func (authenticationError AuthenticationError) Error() string {
	return fmt.Sprintf(authenticationErrorTemplateConstant, authenticationError.Username, authenticationError.StatusCode)
}

// UnexpectedStatusError carries a status code the operation cannot interpret.
type UnexpectedStatusError struct {
	StatusCode int
}

// Error describes the unexpected status.
func (statusError UnexpectedStatusError) Error() string {
	return fmt.Sprintf(unexpectedStatusErrorTemplateConstant, statusError.StatusCode)
}

// OperationError wraps transport issues and unexpected responses.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// MalformedResponseError indicates a response body that does not have the expected shape.
type MalformedResponseError struct {
	Operation OperationName
	Cause     error
}

// Error describes the malformed response.
func (malformedError MalformedResponseError) Error() string {
	return fmt.Sprintf(malformedResponseErrorTemplateConstant, malformedError.Operation, malformedError.Cause)
}

// Unwrap exposes the decoding error.
func (malformedError MalformedResponseError) Unwrap() error {
	return malformedError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}
