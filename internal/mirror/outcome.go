package mirror

import (
	"fmt"
	"net/http"

	"github.com/temirov/ghmirror/internal/repository"
)

const (
	mirrorCreatedTemplateConstant    = "Mirror for %s set up"
	mirrorExistsTemplateConstant     = "Repository %s already exists"
	mirrorUnknownTemplateConstant    = "Unknown error %d for repo %s"
	mirrorPlannedTemplateConstant    = "Would mirror %s from %s"
	outcomeCreatedNameConstant       = "created"
	outcomeAlreadyExistsNameConstant = "already_exists"
	outcomeUnknownErrorNameConstant  = "unknown_error"
	outcomePlannedNameConstant       = "planned"
)

// OutcomeKind classifies the result of a mirror creation request.
type OutcomeKind string

// Supported outcome kinds.
const (
	OutcomeCreated       OutcomeKind = OutcomeKind(outcomeCreatedNameConstant)
	OutcomeAlreadyExists OutcomeKind = OutcomeKind(outcomeAlreadyExistsNameConstant)
	OutcomeUnknownError  OutcomeKind = OutcomeKind(outcomeUnknownErrorNameConstant)
	OutcomePlanned       OutcomeKind = OutcomeKind(outcomePlannedNameConstant)
)

// ClassifyStatus maps a migration endpoint status code to an outcome.
//
// Gogs answers a duplicate repository name with 500, so that code is read as
// "already exists" rather than as a server fault.
func ClassifyStatus(statusCode int) OutcomeKind {
	switch statusCode {
	case http.StatusCreated:
		return OutcomeCreated
	case http.StatusInternalServerError:
		return OutcomeAlreadyExists
	default:
		return OutcomeUnknownError
	}
}

// Outcome records what happened to one repository.
type Outcome struct {
	Repository repository.Repository
	StatusCode int
	Kind       OutcomeKind
}

// Message renders the report line for the outcome.
func (outcome Outcome) Message() string {
	switch outcome.Kind {
	case OutcomeCreated:
		return fmt.Sprintf(mirrorCreatedTemplateConstant, outcome.Repository.Name)
	case OutcomeAlreadyExists:
		return fmt.Sprintf(mirrorExistsTemplateConstant, outcome.Repository.Name)
	case OutcomePlanned:
		return fmt.Sprintf(mirrorPlannedTemplateConstant, outcome.Repository.Name, outcome.Repository.CloneURL)
	default:
		return fmt.Sprintf(mirrorUnknownTemplateConstant, outcome.StatusCode, outcome.Repository.Name)
	}
}
