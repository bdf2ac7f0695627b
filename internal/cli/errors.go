package cli

// Error codes for structured error responses. These codes are stable
// and can be relied upon by agents.
const (
	// Data directory errors
	ErrDirNotSpecified = "DIR_NOT_SPECIFIED"
	ErrDirInvalid      = "DIR_INVALID"
	ErrConfigInvalid   = "CONFIG_INVALID"

	// Note errors
	ErrNoteNotFound = "NOTE_NOT_FOUND"
	ErrNoteExists   = "NOTE_EXISTS"
	ErrNoteInvalid  = "NOTE_INVALID"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"
)
