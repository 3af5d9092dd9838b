package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BuilderError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *BuilderError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *BuilderError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Per-file content errors

func MalformedFrontMatter(path string, cause error) *BuilderError {
	return Wrap(cause, CategoryFrontMatter, SeverityError, "malformed front matter").
		WithContext("path", path)
}

func UnparseableDate(path, raw string) *BuilderError {
	return New(CategoryDate, SeverityError, "unparseable date").
		WithContext("path", path).
		WithContext("date", raw)
}

func UnknownLayout(name, post string) *BuilderError {
	return New(CategoryLayout, SeverityError, "unknown layout").
		WithContext("layout", name).
		WithContext("post", post)
}

func RenderFailed(post string, cause error) *BuilderError {
	return Wrap(cause, CategoryRender, SeverityError, "render failed").
		WithContext("post", post)
}

func ContentReadFailed(path string, cause error) *BuilderError {
	return Wrap(cause, CategoryContent, SeverityError, "content read failed").
		WithContext("path", path)
}

// Build pipeline errors

func BuildFailed(stage string, cause error) *BuilderError {
	return Wrap(cause, CategoryRuntime, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func OutputError(operation string, cause error) *BuilderError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output operation failed").
		WithContext("operation", operation)
}

func GitFetchFailed(url string, cause error) *BuilderError {
	return Wrap(cause, CategoryGit, SeverityFatal, "content fetch failed").
		WithContext("url", url)
}

func StateError(operation string, cause error) *BuilderError {
	return Wrap(cause, CategoryState, SeverityError, "state store operation failed").
		WithContext("operation", operation)
}
