package gogs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ghmirror/internal/credentials"
	"github.com/temirov/ghmirror/internal/repository"
)

const (
	currentUserPathConstant          = "/api/v1/user"
	migrateRepositoryPathConstant    = "/api/v1/repos/migrate"
	urlPathSeparatorConstant         = "/"
	acceptHeaderNameConstant         = "Accept"
	contentTypeHeaderNameConstant    = "Content-Type"
	jsonMediaTypeConstant            = "application/json"
	baseURLFieldNameConstant         = "base_url"
	usernameFieldNameConstant        = "username"
	repositoryNameFieldNameConstant  = "repo_name"
	cloneAddressFieldNameConstant    = "clone_addr"
	requiredValueMessageConstant     = "value required"
	invalidURLMessageConstant        = "must be an absolute http(s) URL"
	missingIdentifierMessageConstant = "missing id field"
	invalidIdentifierMessageConstant = "id field is not an integer"
	httpSchemeConstant               = "http"
	httpsSchemeConstant              = "https"
	mirrorResponseBodyLimitConstant  = 4096
	ownerResolvedMessageConstant     = "Resolved Gogs owner"
	mirrorRequestedMessageConstant   = "Requested Gogs mirror"
	logFieldOwnerIDConstant          = "owner_id"
	logFieldUsernameConstant         = "gogs_user"
	logFieldRepositoryConstant       = "repository"
	logFieldStatusCodeConstant       = "status_code"
	logFieldBodyReadErrorConstant    = "body_read_error"
)

// OwnerID identifies the account that will own created mirrors.
type OwnerID int64

// String renders the identifier in base 10.
func (ownerID OwnerID) String() string {
	return strconv.FormatInt(int64(ownerID), 10)
}

// MirrorResponse describes the server's answer to a mirror creation request.
type MirrorResponse struct {
	StatusCode int
	Body       string
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL     string
	Credentials credentials.Credentials
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Client issues authenticated requests to a Gogs server.
type Client struct {
	baseURL     string
	credentials credentials.Credentials
	httpClient  *http.Client
	logger      *zap.Logger
}

type currentUserResponse struct {
	ID json.RawMessage `json:"id"`
}

type migrateRepositoryPayload struct {
	CloneAddress   string  `json:"clone_addr"`
	OwnerID        OwnerID `json:"uid"`
	RepositoryName string  `json:"repo_name"`
	Mirror         bool    `json:"mirror"`
	Private        bool    `json:"private"`
	Description    string  `json:"description"`
}

// NewClient validates options and constructs a Client.
func NewClient(options ClientOptions) (*Client, error) {
	baseURL, baseURLError := normalizeBaseURL(options.BaseURL)
	if baseURLError != nil {
		return nil, baseURLError
	}

	if len(strings.TrimSpace(options.Credentials.Username())) == 0 {
		return nil, InvalidInputError{FieldName: usernameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:     baseURL,
		credentials: options.Credentials,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// ResolveOwnerID returns the identifier of the authenticated account.
func (client *Client) ResolveOwnerID(executionContext context.Context) (OwnerID, error) {
	request, requestError := client.newRequest(executionContext, http.MethodGet, currentUserPathConstant, nil)
	if requestError != nil {
		return 0, OperationError{Operation: resolveOwnerOperationNameConstant, Cause: requestError}
	}

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return 0, OperationError{Operation: resolveOwnerOperationNameConstant, Cause: responseError}
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return 0, AuthenticationError{Username: client.credentials.Username(), StatusCode: response.StatusCode}
	case response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices:
		return 0, OperationError{Operation: resolveOwnerOperationNameConstant, Cause: UnexpectedStatusError{StatusCode: response.StatusCode}}
	}

	responseBody, readError := io.ReadAll(response.Body)
	if readError != nil {
		return 0, OperationError{Operation: resolveOwnerOperationNameConstant, Cause: readError}
	}

	ownerID, parseError := parseOwnerID(responseBody)
	if parseError != nil {
		return 0, MalformedResponseError{Operation: resolveOwnerOperationNameConstant, Cause: parseError}
	}

	client.logger.Info(
		ownerResolvedMessageConstant,
		zap.String(logFieldUsernameConstant, client.credentials.Username()),
		zap.Int64(logFieldOwnerIDConstant, int64(ownerID)),
	)

	return ownerID, nil
}

// CreateMirror asks the server to create a pull mirror of record owned by ownerID.
// Any HTTP status is returned to the caller; only transport failures are errors.
func (client *Client) CreateMirror(executionContext context.Context, ownerID OwnerID, record repository.Repository) (MirrorResponse, error) {
	if len(strings.TrimSpace(record.Name)) == 0 {
		return MirrorResponse{}, InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(record.CloneURL)) == 0 {
		return MirrorResponse{}, InvalidInputError{FieldName: cloneAddressFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := migrateRepositoryPayload{
		CloneAddress:   record.CloneURL,
		OwnerID:        ownerID,
		RepositoryName: record.Name,
		Mirror:         true,
		Private:        record.Private,
		Description:    record.Description,
	}

	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return MirrorResponse{}, PayloadEncodingError{Operation: createMirrorOperationNameConstant, Cause: encodingError}
	}

	request, requestError := client.newRequest(executionContext, http.MethodPost, migrateRepositoryPathConstant, payloadBytes)
	if requestError != nil {
		return MirrorResponse{}, OperationError{Operation: createMirrorOperationNameConstant, Cause: requestError}
	}

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return MirrorResponse{}, OperationError{Operation: createMirrorOperationNameConstant, Cause: responseError}
	}
	defer response.Body.Close()

	// A failed body read still returns the status.
	responseBody, readError := io.ReadAll(io.LimitReader(response.Body, mirrorResponseBodyLimitConstant))

	logFields := []zap.Field{
		zap.String(logFieldRepositoryConstant, record.Name),
		zap.Int64(logFieldOwnerIDConstant, int64(ownerID)),
		zap.Int(logFieldStatusCodeConstant, response.StatusCode),
	}
	if readError != nil {
		logFields = append(logFields, zap.NamedError(logFieldBodyReadErrorConstant, readError))
	}
	client.logger.Debug(mirrorRequestedMessageConstant, logFields...)

	return MirrorResponse{
		StatusCode: response.StatusCode,
		Body:       strings.TrimSpace(string(responseBody)),
	}, nil
}

func (client *Client) newRequest(executionContext context.Context, method string, path string, body []byte) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	request, requestError := http.NewRequestWithContext(executionContext, method, client.baseURL+path, bodyReader)
	if requestError != nil {
		return nil, requestError
	}

	request.SetBasicAuth(client.credentials.Username(), client.credentials.Password())
	request.Header.Set(acceptHeaderNameConstant, jsonMediaTypeConstant)
	if body != nil {
		request.Header.Set(contentTypeHeaderNameConstant, jsonMediaTypeConstant)
	}

	return request, nil
}

func parseOwnerID(responseBody []byte) (OwnerID, error) {
	var decoded currentUserResponse
	if decodingError := json.Unmarshal(responseBody, &decoded); decodingError != nil {
		return 0, decodingError
	}

	rawIdentifier := bytes.TrimSpace(decoded.ID)
	if len(rawIdentifier) == 0 || bytes.Equal(rawIdentifier, []byte("null")) {
		return 0, errors.New(missingIdentifierMessageConstant)
	}

	var identifierText string
	if rawIdentifier[0] == '"' {
		if decodingError := json.Unmarshal(rawIdentifier, &identifierText); decodingError != nil {
			return 0, decodingError
		}
	} else {
		identifierText = string(rawIdentifier)
	}

	identifier, parseError := strconv.ParseInt(strings.TrimSpace(identifierText), 10, 64)
	if parseError != nil {
		return 0, errors.New(invalidIdentifierMessageConstant)
	}

	return OwnerID(identifier), nil
}

func normalizeBaseURL(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if len(trimmedURL) == 0 {
		return "", InvalidInputError{FieldName: baseURLFieldNameConstant, Message: requiredValueMessageConstant}
	}

	parsedURL, parseError := url.Parse(trimmedURL)
	if parseError != nil || (parsedURL.Scheme != httpSchemeConstant && parsedURL.Scheme != httpsSchemeConstant) || len(parsedURL.Host) == 0 {
		return "", InvalidInputError{FieldName: baseURLFieldNameConstant, Message: invalidURLMessageConstant}
	}

	return strings.TrimRight(trimmedURL, urlPathSeparatorConstant), nil
}
