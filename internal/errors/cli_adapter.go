package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if ae, ok := err.(*AppError); ok {
		return a.exitCodeFromApp(ae)
	}

	return 1
}

// exitCodeFromApp maps AppError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromApp(err *AppError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryCatalog, CategoryRender, CategoryFileSystem:
		return 11 // Generation error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if ae, ok := err.(*AppError); ok {
		if a.verbose {
			return ae.Error()
		}
		return fmt.Sprintf("Error (%s): %s", ae.Category, ae.Message)
	}

	return fmt.Sprintf("Error: %v", err)
}
