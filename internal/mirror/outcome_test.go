package mirror_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghmirror/internal/mirror"
	"github.com/temirov/ghmirror/internal/repository"
)

func TestClassifyStatusAndMessage(testInstance *testing.T) {
	record := repository.Repository{Name: "r1", CloneURL: "https://github.com/alice/r1.git", OwnerLogin: "alice"}

	testCases := []struct {
		name            string
		statusCode      int
		expectedKind    mirror.OutcomeKind
		expectedMessage string
	}{
		{name: "created", statusCode: 201, expectedKind: mirror.OutcomeCreated, expectedMessage: "Mirror for r1 set up"},
		{name: "already_exists", statusCode: 500, expectedKind: mirror.OutcomeAlreadyExists, expectedMessage: "Repository r1 already exists"},
		{name: "not_found", statusCode: 404, expectedKind: mirror.OutcomeUnknownError, expectedMessage: "Unknown error 404 for repo r1"},
		{name: "ok_is_unknown", statusCode: 200, expectedKind: mirror.OutcomeUnknownError, expectedMessage: "Unknown error 200 for repo r1"},
		{name: "unprocessable", statusCode: 422, expectedKind: mirror.OutcomeUnknownError, expectedMessage: "Unknown error 422 for repo r1"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			kind := mirror.ClassifyStatus(testCase.statusCode)
			require.Equal(testInstance, testCase.expectedKind, kind)

			outcome := mirror.Outcome{Repository: record, StatusCode: testCase.statusCode, Kind: kind}
			require.Equal(testInstance, testCase.expectedMessage, outcome.Message())
		})
	}
}

func TestPlannedOutcomeMessage(testInstance *testing.T) {
	outcome := mirror.Outcome{
		Repository: repository.Repository{Name: "r1", CloneURL: "https://github.com/alice/r1.git"},
		Kind:       mirror.OutcomePlanned,
	}
	require.Equal(testInstance, "Would mirror r1 from https://github.com/alice/r1.git", outcome.Message())
}
