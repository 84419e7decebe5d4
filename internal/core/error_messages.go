// Error codes reference
//
// User-facing messages carry a code that can be quoted when reporting a
// problem. Codes are grouped by category:
//
//	REF001  - Reflection not found
//	VAL001  - Invalid date (expects YYYY-MM-DD)
//	VAL002  - Invalid month (expects 1-12)
//	VAL003  - Unknown language
//	VAL004  - Invalid argument
//	FILE001 - CSV file not found
//	FILE002 - CSV header row not found
//	FILE003 - File too large
//	IMP001  - Strict import aborted
//	DB001   - Unique constraint violation
//	DB002   - Database locked or busy
//	DB003   - Database unreachable
//	DB004   - Schema missing
//	REQ001  - Request cancelled
//	REQ002  - Request timed out
//	RATE001 - Rate limited
//	ERR000  - Unknown error (check the logs for the technical error)
//
// Sentinel errors are matched first with errors.Is. Driver errors from
// SQLite and PostgreSQL have no shared type, so they fall back to
// case-insensitive substring patterns; the first match wins.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	target error
	msg    UserMessage
}

var sentinelMessages = []sentinelMessage{
	{ErrNotFound, UserMessage{"No reflection found", "Try another date or language", "REF001"}},
	{ErrInvalidDate, UserMessage{"Invalid date", "Use the YYYY-MM-DD format, e.g. 2025-01-01", "VAL001"}},
	{ErrInvalidMonth, UserMessage{"Invalid month", "Use a month number between 1 and 12", "VAL002"}},
	{ErrUnknownLanguage, UserMessage{"Unknown language", "Use one of: " + strings.Join(LanguageNames(), ", "), "VAL003"}},
	{ErrInvalidArgument, UserMessage{"Invalid argument", "Check the command usage and try again", "VAL004"}},
	{ErrCSVNotFound, UserMessage{"CSV file not found", "Check the --csv path or IMPORT_CSV_PATH", "FILE001"}},
	{ErrHeaderNotFound, UserMessage{"CSV header row not found", "The file needs the columns: " + strings.Join(CSVColumns, ", "), "FILE002"}},
	{ErrFileTooLarge, UserMessage{"File exceeds the maximum size", "Raise IMPORT_MAX_FILE_SIZE or split the file", "FILE003"}},
	{ErrImportAborted, UserMessage{"Import aborted, no rows were changed", "Fix the failed rows or run without --strict", "IMP001"}},
	{context.Canceled, UserMessage{"Request was cancelled", "Please try again", "REQ001"}},
	{context.DeadlineExceeded, UserMessage{"Request timed out", "Please try again later", "REQ002"}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps driver error text (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	{"unique constraint", UserMessage{"A reflection for this date and language already exists", "Re-run the import for the whole language", "DB001"}},
	{"duplicate key", UserMessage{"A reflection for this date and language already exists", "Re-run the import for the whole language", "DB001"}},
	{"database is locked", UserMessage{"Database is busy", "Wait for the running import to finish and try again", "DB002"}},
	{"sqlite_busy", UserMessage{"Database is busy", "Wait for the running import to finish and try again", "DB002"}},
	{"connection refused", UserMessage{"Unable to connect to database", "Check DATABASE_URL and that the server is running", "DB003"}},
	{"unable to open database", UserMessage{"Unable to open database", "Check DATABASE_URL and file permissions", "DB003"}},
	{"no such table", UserMessage{"Database has no reflections table", "Run the import command first", "DB004"}},
	{`relation "reflections" does not exist`, UserMessage{"Database has no reflections table", "Run the import command first", "DB004"}},
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	msg := MapError(fmt.Errorf("lookup: %w", ErrNotFound))
//	// msg.Code == "REF001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.target) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
