package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apperrors "github.com/yanqian/pikacalc/pkg/errors"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // upstream or runtime failure
	ExitCommandError = 2 // bad flags, arguments or references
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error, ExitFailure when it carries none.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// fromDomainError classifies a service error: caller mistakes exit 2, everything else 1.
func fromDomainError(err error) error {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidInput, apperrors.CodeNotFound:
		return &ExitError{Code: ExitCommandError, Message: apperrors.CodeOf(err), Err: err}
	case "":
		return &ExitError{Code: ExitFailure, Message: "command failed", Err: err}
	default:
		return &ExitError{Code: ExitFailure, Message: apperrors.CodeOf(err), Err: err}
	}
}

// Response is the JSON envelope written in --format json.
type Response struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody mirrors the HTTP adapter's error body.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OutputFormatter writes results as JSON or through a text renderer.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

// Success emits data, using render for text output.
func (f *OutputFormatter) Success(data any, render func(io.Writer)) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "ok", Data: data})
	}
	render(f.Writer)
	return nil
}

// Fail reports err in the configured format and returns it for the exit code.
func (f *OutputFormatter) Fail(err error) error {
	code := apperrors.CodeOf(err)
	if code == "" {
		code = "error"
	}
	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(Response{
			Status: "error",
			Error:  &ErrorBody{Code: code, Message: err.Error()},
		})
	} else {
		fmt.Fprintf(f.ErrWriter, "Error [%s]: %s\n", code, err.Error())
	}
	return fromDomainError(err)
}

// Progress writes a status line to stderr in text mode only, keeping stdout parseable.
func (f *OutputFormatter) Progress(format string, args ...any) {
	if f.Format == "json" {
		return
	}
	fmt.Fprintf(f.ErrWriter, format+"\n", args...)
}
