package util

import "errors"

var (
	ErrRowsMissing        = errors.New("rows array missing")
	ErrInvalidRow         = errors.New("invalid row")
	ErrSaveFailed         = errors.New("Failed to save CSV")
	ErrSubmissionFailed   = errors.New("submission failed")
	ErrDuplicateQuestion  = errors.New("duplicate question id")
	ErrInvalidQuestion    = errors.New("invalid question")
	ErrEmptyCatalog       = errors.New("catalog has no questions")
	ErrResultsNotFound    = errors.New("no results recorded yet")
	ErrStorageUnavailable = errors.New("storage provider unavailable")
)
