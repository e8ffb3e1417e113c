package githubapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"go.uber.org/zap"

	"github.com/temirov/ghmirror/internal/credentials"
	"github.com/temirov/ghmirror/internal/repository"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com/"
	// DefaultPageSize is the number of repositories requested per page.
	DefaultPageSize = 100

	maximumPageSizeConstant         = 100
	firstPageNumberConstant         = 1
	urlPathSeparatorConstant        = "/"
	usernameFieldNameConstant       = "username"
	apiURLFieldNameConstant         = "api_url"
	pageSizeFieldNameConstant       = "page_size"
	requiredValueMessageConstant    = "value required"
	invalidURLMessageConstant       = "must be an absolute http(s) URL"
	pageSizeRangeMessageConstant    = "must be between 1 and 100"
	nameFieldNameConstant           = "name"
	cloneURLFieldNameConstant       = "clone_url"
	ownerLoginFieldNameConstant     = "owner.login"
	pageFetchedMessageConstant      = "Fetched repository page"
	listingCompletedMessageConstant = "Repository listing completed"
	logFieldPageConstant            = "page"
	logFieldPageItemsConstant       = "page_items"
	logFieldTotalItemsConstant      = "total_items"
	logFieldRateRemainingConstant   = "rate_remaining"
	logFieldUsernameConstant        = "github_user"
	httpSchemeConstant              = "http"
	httpsSchemeConstant             = "https"
)

// ListerOptions configures a Lister.
type ListerOptions struct {
	Credentials credentials.Credentials
	APIURL      string
	PageSize    int
	Transport   http.RoundTripper
	Logger      *zap.Logger
}

// Lister enumerates the repositories of the authenticated account.
type Lister struct {
	client   *github.Client
	username string
	pageSize int
	logger   *zap.Logger
}

// NewLister constructs a Lister authenticating with basic auth against options.APIURL.
func NewLister(options ListerOptions) (*Lister, error) {
	username := strings.TrimSpace(options.Credentials.Username())
	if len(username) == 0 {
		return nil, InvalidInputError{FieldName: usernameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	baseURL, baseURLError := normalizeAPIURL(options.APIURL)
	if baseURLError != nil {
		return nil, baseURLError
	}

	pageSize := options.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > maximumPageSizeConstant {
		return nil, InvalidInputError{FieldName: pageSizeFieldNameConstant, Message: pageSizeRangeMessageConstant}
	}

	authenticationTransport := &github.BasicAuthTransport{
		Username:  username,
		Password:  options.Credentials.Password(),
		Transport: options.Transport,
	}

	client := github.NewClient(authenticationTransport.Client())
	client.BaseURL = baseURL

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Lister{
		client:   client,
		username: username,
		pageSize: pageSize,
		logger:   logger,
	}, nil
}

// ListRepositories fetches every page of the authenticated user's repository
// listing, one request at a time, and returns the records in received order.
func (lister *Lister) ListRepositories(executionContext context.Context) ([]repository.Repository, error) {
	listOptions := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: lister.pageSize},
	}

	records := []repository.Repository{}
	pageNumber := firstPageNumberConstant
	nextPageURL := ""

	for {
		pageRepositories, response, listError := lister.fetchPage(executionContext, listOptions, nextPageURL)
		if listError != nil {
			return nil, lister.classifyError(pageNumber, listError)
		}

		for _, pageRepository := range pageRepositories {
			record, mappingError := mapRepository(pageNumber, pageRepository)
			if mappingError != nil {
				return nil, mappingError
			}
			records = append(records, record)
		}

		lister.logger.Debug(
			pageFetchedMessageConstant,
			zap.String(logFieldUsernameConstant, lister.username),
			zap.Int(logFieldPageConstant, pageNumber),
			zap.Int(logFieldPageItemsConstant, len(pageRepositories)),
			zap.Int(logFieldRateRemainingConstant, response.Rate.Remaining),
		)

		nextPageURL = nextLinkTarget(response.Header)
		if len(nextPageURL) == 0 {
			break
		}
		pageNumber++
	}

	lister.logger.Info(
		listingCompletedMessageConstant,
		zap.String(logFieldUsernameConstant, lister.username),
		zap.Int(logFieldTotalItemsConstant, len(records)),
	)

	return records, nil
}

// fetchPage requests the first page through the typed listing call and every
// later page at the exact target named by the previous rel="next" link.
func (lister *Lister) fetchPage(executionContext context.Context, listOptions *github.RepositoryListByAuthenticatedUserOptions, nextPageURL string) ([]*github.Repository, *github.Response, error) {
	if len(nextPageURL) == 0 {
		return lister.client.Repositories.ListByAuthenticatedUser(executionContext, listOptions)
	}

	request, requestError := lister.client.NewRequest(http.MethodGet, nextPageURL, nil)
	if requestError != nil {
		return nil, nil, requestError
	}

	var pageRepositories []*github.Repository
	response, doError := lister.client.Do(executionContext, request, &pageRepositories)
	if doError != nil {
		return nil, response, doError
	}
	return pageRepositories, response, nil
}

func (lister *Lister) classifyError(pageNumber int, listError error) error {
	var twoFactorError *github.TwoFactorAuthError
	if errors.As(listError, &twoFactorError) {
		return AuthenticationError{Username: lister.username, StatusCode: http.StatusUnauthorized, Cause: listError}
	}

	var errorResponse *github.ErrorResponse
	if errors.As(listError, &errorResponse) && errorResponse.Response != nil {
		statusCode := errorResponse.Response.StatusCode
		if statusCode == http.StatusUnauthorized {
			return AuthenticationError{Username: lister.username, StatusCode: statusCode, Cause: listError}
		}
	}

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	if errors.As(listError, &syntaxError) || errors.As(listError, &typeError) || errors.Is(listError, io.ErrUnexpectedEOF) {
		return MalformedResponseError{Page: pageNumber, Cause: listError}
	}

	return OperationError{Page: pageNumber, Cause: listError}
}

func mapRepository(pageNumber int, pageRepository *github.Repository) (repository.Repository, error) {
	if pageRepository == nil || pageRepository.Name == nil {
		return repository.Repository{}, MalformedResponseError{Page: pageNumber, FieldName: nameFieldNameConstant}
	}
	if pageRepository.CloneURL == nil {
		return repository.Repository{}, MalformedResponseError{Page: pageNumber, FieldName: cloneURLFieldNameConstant}
	}
	if pageRepository.Owner == nil || pageRepository.Owner.Login == nil {
		return repository.Repository{}, MalformedResponseError{Page: pageNumber, FieldName: ownerLoginFieldNameConstant}
	}

	return repository.Repository{
		Name:        pageRepository.GetName(),
		CloneURL:    pageRepository.GetCloneURL(),
		OwnerLogin:  pageRepository.GetOwner().GetLogin(),
		Private:     pageRepository.GetPrivate(),
		Fork:        pageRepository.GetFork(),
		Description: pageRepository.GetDescription(),
	}, nil
}

func normalizeAPIURL(rawURL string) (*url.URL, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if len(trimmedURL) == 0 {
		trimmedURL = DefaultAPIURL
	}

	parsedURL, parseError := url.Parse(trimmedURL)
	if parseError != nil {
		return nil, InvalidInputError{FieldName: apiURLFieldNameConstant, Message: invalidURLMessageConstant}
	}
	if (parsedURL.Scheme != httpSchemeConstant && parsedURL.Scheme != httpsSchemeConstant) || len(parsedURL.Host) == 0 {
		return nil, InvalidInputError{FieldName: apiURLFieldNameConstant, Message: invalidURLMessageConstant}
	}

	if !strings.HasSuffix(parsedURL.Path, urlPathSeparatorConstant) {
		parsedURL.Path += urlPathSeparatorConstant
	}

	return parsedURL, nil
}
