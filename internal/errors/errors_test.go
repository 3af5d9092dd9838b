package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestBuilderError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BuilderError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestBuilderError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, CategoryLayout, SeverityError, "render broke")

	if !stdErrors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestBuilderError_WithContext(t *testing.T) {
	err := UnknownLayout("fancy", "posts/a.md")

	if err.Context["layout"] != "fancy" {
		t.Errorf("Context[layout] = %v, want fancy", err.Context["layout"])
	}
	if err.Context["post"] != "posts/a.md" {
		t.Errorf("Context[post] = %v, want posts/a.md", err.Context["post"])
	}
}

func TestIsCategory(t *testing.T) {
	dateErr := UnparseableDate("a.md", "tomorrow")
	if !IsCategory(dateErr, CategoryDate) {
		t.Error("expected date category")
	}
	if IsCategory(dateErr, CategoryLayout) {
		t.Error("did not expect layout category")
	}
	if IsCategory(fmt.Errorf("plain"), CategoryDate) {
		t.Error("plain errors have no category")
	}
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false)

	tests := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{fmt.Errorf("plain"), 1},
		{ConfigNotFound("x.yaml"), 7},
		{ValidationFailed("f", "bad"), 2},
		{UnknownLayout("x", "p"), 11},
		{GitFetchFailed("u", fmt.Errorf("refused")), 8},
		{StateError("open", fmt.Errorf("locked")), 12},
	}
	for _, test := range tests {
		if got := adapter.ExitCodeFor(test.err); got != test.code {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", test.err, got, test.code)
		}
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	terse := NewCLIErrorAdapter(false)
	verbose := NewCLIErrorAdapter(true)
	err := Wrap(fmt.Errorf("no such file"), CategoryConfig, SeverityFatal, "configuration file not found")

	if got := terse.FormatError(err); got != "configuration file not found" {
		t.Errorf("terse format = %q", got)
	}
	if got := verbose.FormatError(err); got != err.Error() {
		t.Errorf("verbose format = %q, want full error", got)
	}
}
