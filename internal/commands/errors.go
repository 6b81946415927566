package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so transports and logs can
// classify failures without string matching.
const (
	codeValidationFailed = "LOCALIZE_COMMAND_VALIDATION_FAILED"
	codeContextCanceled  = "LOCALIZE_COMMAND_CANCELED"
	codeContextTimeout   = "LOCALIZE_COMMAND_TIMEOUT"
	codeContextError     = "LOCALIZE_COMMAND_CONTEXT_ERROR"
	codeExecuteFailed    = "LOCALIZE_COMMAND_EXECUTION_FAILED"
)

// wrapValidationError tags message validation failures. Already-wrapped errors
// pass through so categories assigned closer to the failure win.
func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message rejected").
		WithTextCode(codeValidationFailed)
}

// wrapContextError distinguishes cancellation from deadline expiry; both keep
// the original error as the cause for errors.Is checks.
func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command canceled").
			WithTextCode(codeContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").
			WithTextCode(codeContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context failed").
			WithTextCode(codeContextError)
	}
}

// wrapExecuteError tags failures raised by the wrapped function itself.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(codeExecuteFailed)
}
