package cli

// Error codes carried in the JSON envelope. Codes are stable: scripts and
// agents branch on them, so renaming one is a breaking change.
const (
	// Store errors
	ErrStoreOpen     = "STORE_OPEN_FAILED"
	ErrDatabaseError = "DATABASE_ERROR"

	// Collection errors
	ErrCollectionInvalid = "COLLECTION_INVALID"

	// Document errors
	ErrDocNotFound   = "DOCUMENT_NOT_FOUND"
	ErrDocExists     = "DOCUMENT_EXISTS"
	ErrDocInvalid    = "DOCUMENT_INVALID"
	ErrFieldNotFound = "FIELD_NOT_FOUND"

	// Query errors
	ErrWhereInvalid = "WHERE_INVALID"
	ErrIndexInvalid = "INDEX_INVALID"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes attached to otherwise successful responses.
const (
	WarnSkippedFile = "SKIPPED_FILE"
)
