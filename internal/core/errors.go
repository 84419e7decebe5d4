package core

import "errors"

var (
	// ErrNotFound is returned when no reflection matches a lookup.
	ErrNotFound = errors.New("reflection not found")

	ErrUnknownLanguage = errors.New("unknown language")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCSVNotFound is returned before the database is touched.
	ErrCSVNotFound    = errors.New("csv file not found")
	ErrHeaderNotFound = errors.New("csv header not found")
	ErrFileTooLarge   = errors.New("file too large")

	// ErrImportAborted is returned by a strict import that had failed rows.
	ErrImportAborted = errors.New("import aborted")
)
