package mirror

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/ghmirror/internal/gogs"
	"github.com/temirov/ghmirror/internal/repository"
)

const (
	sourceListerMissingMessageConstant   = "source lister not configured"
	targetClientMissingMessageConstant   = "target client not configured"
	reporterMissingMessageConstant       = "reporter not configured"
	accountLoginRequiredMessageConstant  = "account login required"
	sourceListingErrorTemplateConstant   = "unable to list source repositories: %w"
	ownerResolutionErrorTemplateConstant = "unable to resolve target owner: %w"
	mirrorCreationErrorTemplateConstant  = "unable to request mirror for %s: %w"
	reportLineTemplateConstant           = "%s\n"
	repositoriesSelectedMessageConstant  = "Selected repositories to mirror"
	mirrorOutcomeMessageConstant         = "Mirror request completed"
	mirrorUnknownOutcomeMessageConstant  = "Mirror request returned an unexpected status"
	mirrorSummaryMessageConstant         = "Mirror run finished"
	logFieldAccountConstant              = "account"
	logFieldFetchedCountConstant         = "fetched"
	logFieldSelectedCountConstant        = "selected"
	logFieldIncludeForksConstant         = "include_forks"
	logFieldDryRunConstant               = "dry_run"
	logFieldRepositoryConstant           = "repository"
	logFieldStatusCodeConstant           = "status_code"
	logFieldOutcomeConstant              = "outcome"
	logFieldResponseBodyConstant         = "response_body"
	logFieldCreatedCountConstant         = "created"
	logFieldAlreadyExistsCountConstant   = "already_exists"
	logFieldUnknownErrorCountConstant    = "unknown_errors"
	logFieldPlannedCountConstant         = "planned"
)

var (
	// ErrSourceListerNotConfigured indicates the service was constructed without a source lister.
	ErrSourceListerNotConfigured = errors.New(sourceListerMissingMessageConstant)
	// ErrTargetClientNotConfigured indicates the service was constructed without a target client.
	ErrTargetClientNotConfigured = errors.New(targetClientMissingMessageConstant)
	// ErrReporterNotConfigured indicates the service was constructed without a reporter.
	ErrReporterNotConfigured = errors.New(reporterMissingMessageConstant)
	// ErrAccountLoginRequired indicates Execute was called without the source account login.
	ErrAccountLoginRequired = errors.New(accountLoginRequiredMessageConstant)
)

// SourceLister enumerates the repositories visible to the source account.
type SourceLister interface {
	ListRepositories(executionContext context.Context) ([]repository.Repository, error)
}

// TargetClient resolves the target owner and creates mirrors.
type TargetClient interface {
	ResolveOwnerID(executionContext context.Context) (gogs.OwnerID, error)
	CreateMirror(executionContext context.Context, ownerID gogs.OwnerID, record repository.Repository) (gogs.MirrorResponse, error)
}

// ServiceDependencies enumerates collaborators required by Service.
type ServiceDependencies struct {
	Logger       *zap.Logger
	SourceLister SourceLister
	TargetClient TargetClient
	Reporter     Reporter
}

// Options configures a single mirror run.
type Options struct {
	AccountLogin string
	IncludeForks bool
	DryRun       bool
}

// Result summarizes a mirror run.
type Result struct {
	FetchedCount int
	OwnerID      gogs.OwnerID
	Outcomes     []Outcome
}

// CountByKind returns the number of outcomes of the given kind.
func (result Result) CountByKind(kind OutcomeKind) int {
	count := 0
	for _, outcome := range result.Outcomes {
		if outcome.Kind == kind {
			count++
		}
	}
	return count
}

// Service runs the list, filter, and mirror pipeline sequentially.
type Service struct {
	logger       *zap.Logger
	sourceLister SourceLister
	targetClient TargetClient
	reporter     Reporter
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.SourceLister == nil {
		return nil, ErrSourceListerNotConfigured
	}
	if dependencies.TargetClient == nil {
		return nil, ErrTargetClientNotConfigured
	}
	if dependencies.Reporter == nil {
		return nil, ErrReporterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:       logger,
		sourceLister: dependencies.SourceLister,
		targetClient: dependencies.TargetClient,
		reporter:     dependencies.Reporter,
	}, nil
}

// Execute mirrors every selected repository in listing order. Per-repository
// status codes are reported and never abort the run; listing, owner
// resolution, and transport failures do.
func (service *Service) Execute(executionContext context.Context, options Options) (Result, error) {
	if len(options.AccountLogin) == 0 {
		return Result{}, ErrAccountLoginRequired
	}

	fetchedRepositories, listError := service.sourceLister.ListRepositories(executionContext)
	if listError != nil {
		return Result{}, fmt.Errorf(sourceListingErrorTemplateConstant, listError)
	}

	selectedRepositories := repository.Filter(fetchedRepositories, options.AccountLogin, options.IncludeForks)

	service.logger.Info(
		repositoriesSelectedMessageConstant,
		zap.String(logFieldAccountConstant, options.AccountLogin),
		zap.Int(logFieldFetchedCountConstant, len(fetchedRepositories)),
		zap.Int(logFieldSelectedCountConstant, len(selectedRepositories)),
		zap.Bool(logFieldIncludeForksConstant, options.IncludeForks),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	result := Result{
		FetchedCount: len(fetchedRepositories),
		Outcomes:     make([]Outcome, 0, len(selectedRepositories)),
	}

	ownerID, ownerError := service.targetClient.ResolveOwnerID(executionContext)
	if ownerError != nil {
		return result, fmt.Errorf(ownerResolutionErrorTemplateConstant, ownerError)
	}
	result.OwnerID = ownerID

	for _, selectedRepository := range selectedRepositories {
		if contextError := executionContext.Err(); contextError != nil {
			return result, contextError
		}

		outcome, mirrorError := service.mirrorRepository(executionContext, ownerID, selectedRepository, options.DryRun)
		if mirrorError != nil {
			return result, mirrorError
		}

		result.Outcomes = append(result.Outcomes, outcome)
		service.reporter.Printf(reportLineTemplateConstant, outcome.Message())
	}

	service.logger.Info(
		mirrorSummaryMessageConstant,
		zap.Int(logFieldSelectedCountConstant, len(selectedRepositories)),
		zap.Int(logFieldCreatedCountConstant, result.CountByKind(OutcomeCreated)),
		zap.Int(logFieldAlreadyExistsCountConstant, result.CountByKind(OutcomeAlreadyExists)),
		zap.Int(logFieldUnknownErrorCountConstant, result.CountByKind(OutcomeUnknownError)),
		zap.Int(logFieldPlannedCountConstant, result.CountByKind(OutcomePlanned)),
	)

	return result, nil
}

func (service *Service) mirrorRepository(executionContext context.Context, ownerID gogs.OwnerID, record repository.Repository, dryRun bool) (Outcome, error) {
	if dryRun {
		return Outcome{Repository: record, Kind: OutcomePlanned}, nil
	}

	response, createError := service.targetClient.CreateMirror(executionContext, ownerID, record)
	if createError != nil {
		return Outcome{}, fmt.Errorf(mirrorCreationErrorTemplateConstant, record.Name, createError)
	}

	outcome := Outcome{
		Repository: record,
		StatusCode: response.StatusCode,
		Kind:       ClassifyStatus(response.StatusCode),
	}

	if outcome.Kind == OutcomeUnknownError {
		service.logger.Warn(
			mirrorUnknownOutcomeMessageConstant,
			zap.String(logFieldRepositoryConstant, record.FullName()),
			zap.Int(logFieldStatusCodeConstant, response.StatusCode),
			zap.String(logFieldResponseBodyConstant, response.Body),
		)
		return outcome, nil
	}

	service.logger.Info(
		mirrorOutcomeMessageConstant,
		zap.String(logFieldRepositoryConstant, record.FullName()),
		zap.Int(logFieldStatusCodeConstant, response.StatusCode),
		zap.String(logFieldOutcomeConstant, string(outcome.Kind)),
	)

	return outcome, nil
}
