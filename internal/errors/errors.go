package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/IlyaKukarkin/bee-bloom/internal/logger"
)

// Sentinel errors for the repository layer. Callers match with errors.Is.
var (
	// ErrNotFound is returned when operating on a missing or soft-deleted entity.
	ErrNotFound = stderrors.New("not found")

	// ErrValidation is returned for empty or out-of-bounds user input.
	ErrValidation = stderrors.New("invalid input")

	// ErrInvalidDate is returned when a check date falls outside the
	// today/yesterday backfill window.
	ErrInvalidDate = stderrors.New("date outside backfill window")
)

// NotFoundf wraps ErrNotFound with context.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf wraps ErrValidation with context.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// InvalidDatef wraps ErrInvalidDate with context.
func InvalidDatef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidDate)...)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
