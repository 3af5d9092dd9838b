package errors

import (
	"fmt"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the command line entry point.
type CLIErrorAdapter struct {
	verbose bool
}

func NewCLIErrorAdapter(verbose bool) *CLIErrorAdapter {
	return &CLIErrorAdapter{verbose: verbose}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	be, ok := err.(*BuilderError)
	if !ok {
		return 1
	}
	switch be.Category {
	case CategoryValidation:
		return 2
	case CategoryConfig:
		return 7
	case CategoryGit:
		return 8
	case CategoryFrontMatter, CategoryDate, CategoryLayout, CategoryRender, CategoryContent, CategoryFileSystem:
		return 11
	case CategoryState, CategoryRuntime:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	be, ok := err.(*BuilderError)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return be.Error()
	}
	switch be.Category {
	case CategoryConfig, CategoryValidation:
		return be.Message
	default:
		return fmt.Sprintf("%s: %s", be.Category, be.Message)
	}
}
