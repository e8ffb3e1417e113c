package credentials_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghmirror/internal/credentials"
)

func TestIOPasswordPrompterPromptPassword(testInstance *testing.T) {
	testCases := []struct {
		name             string
		input            string
		expectedPassword string
	}{
		{name: "unix_line_ending", input: "s3cret\n", expectedPassword: "s3cret"},
		{name: "windows_line_ending", input: "s3cret\r\n", expectedPassword: "s3cret"},
		{name: "keeps_inner_spaces", input: " pass phrase \n", expectedPassword: " pass phrase "},
		{name: "eof_without_newline", input: "s3cret", expectedPassword: "s3cret"},
		{name: "empty_input", input: "", expectedPassword: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			prompter := credentials.NewIOPasswordPrompter(strings.NewReader(testCase.input), outputBuffer)

			password, promptError := prompter.PromptPassword(testPromptLabelConstant)
			require.NoError(testInstance, promptError)
			require.Equal(testInstance, testCase.expectedPassword, password)
			require.Equal(testInstance, testPromptLabelConstant, outputBuffer.String())
		})
	}
}

func TestIOPasswordPrompterSequentialPrompts(testInstance *testing.T) {
	prompter := credentials.NewIOPasswordPrompter(strings.NewReader("first\nsecond\n"), nil)

	firstPassword, firstError := prompter.PromptPassword("GitHub password: ")
	require.NoError(testInstance, firstError)
	secondPassword, secondError := prompter.PromptPassword("Gogs password: ")
	require.NoError(testInstance, secondError)

	require.Equal(testInstance, "first", firstPassword)
	require.Equal(testInstance, "second", secondPassword)
}
