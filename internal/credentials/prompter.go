package credentials

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	promptLineTerminatorConstant = "\n"
	lineEndingCharactersConstant = "\r\n"
)

// PasswordPrompter collects a secret interactively.
type PasswordPrompter interface {
	PromptPassword(label string) (string, error)
}

// IOPasswordPrompter reads passwords from an io.Reader. When the reader is a
// terminal the input is read without echo.
type IOPasswordPrompter struct {
	input  io.Reader
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPasswordPrompter constructs a prompter from the provided reader and writer.
func NewIOPasswordPrompter(input io.Reader, output io.Writer) *IOPasswordPrompter {
	return &IOPasswordPrompter{input: input, reader: bufio.NewReader(input), writer: output}
}

// PromptPassword writes the label and returns the entered secret without its line ending.
func (prompter *IOPasswordPrompter) PromptPassword(label string) (string, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, label); writeError != nil {
			return "", writeError
		}
	}

	if inputFile, isFile := prompter.input.(*os.File); isFile && term.IsTerminal(int(inputFile.Fd())) {
		passwordBytes, readError := term.ReadPassword(int(inputFile.Fd()))
		if prompter.writer != nil {
			_, _ = io.WriteString(prompter.writer, promptLineTerminatorConstant)
		}
		if readError != nil {
			return "", readError
		}
		return string(passwordBytes), nil
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return "", readError
	}

	return strings.TrimRight(response, lineEndingCharactersConstant), nil
}
