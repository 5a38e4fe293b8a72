package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *AppError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *AppError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Catalog errors

func UnreadableRoot(root string, cause error) *AppError {
	return Wrap(cause, CategoryCatalog, SeverityFatal, "root directory is not readable").
		WithContext("root", root)
}

// Loader errors

func DestinationCollision(dest string, sources []string) *AppError {
	return New(CategoryConfig, SeverityFatal, "loader maps multiple sources to one destination").
		WithContext("destination", dest).
		WithContext("sources", sources)
}

// Filesystem errors

func WriteError(path string, cause error) *AppError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "write failed").
		WithContext("path", path)
}
