// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Vault errors
	ErrVaultNotFound     = "VAULT_NOT_FOUND"
	ErrVaultNotSpecified = "VAULT_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"

	// Dialect errors
	ErrDialectUnknown = "DIALECT_UNKNOWN"

	// File errors
	ErrFileNotFound     = "FILE_NOT_FOUND"
	ErrFileReadError    = "FILE_READ_ERROR"
	ErrFileWriteError   = "FILE_WRITE_ERROR"
	ErrFileOutsideVault = "FILE_OUTSIDE_VAULT"

	// Parse and conversion errors
	ErrParseFailed   = "PARSE_FAILED"
	ErrConvertFailed = "CONVERT_FAILED"

	// Index errors
	ErrIndexError    = "INDEX_ERROR"
	ErrNoteNotFound  = "NOTE_NOT_FOUND"
	ErrDuplicateName = "DUPLICATE_NAME"

	// Inbox errors
	ErrInboxNotConfigured = "INBOX_NOT_CONFIGURED"
	ErrInboxFetchFailed   = "INBOX_FETCH_FAILED"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
