package apperrors

import "errors"

var (
	ErrEmptyInput          = errors.New("question is empty")
	ErrNoTableResolved     = errors.New("no table could be resolved from the question")
	ErrSQLGenerationFailed = errors.New("SQL generation failed")
	ErrExecutionFailed     = errors.New("query execution failed")
	ErrUnsafeSQL           = errors.New("generated SQL failed the injection check")
)
