package app

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal CLI error.
type Kind string

const (
	// InvalidArguments: wrong number of positional arguments or an
	// argument that does not parse.
	InvalidArguments Kind = "INVALID_ARGUMENTS"

	// FileUnreadable: the target map is missing or cannot be opened.
	FileUnreadable Kind = "FILE_UNREADABLE"

	// EmptyOrCorruptTargetList: ingestion yielded no targets.
	EmptyOrCorruptTargetList Kind = "EMPTY_OR_CORRUPT_TARGET_LIST"

	// InvalidRadius: the strike radius is not a positive number.
	InvalidRadius Kind = "INVALID_RADIUS"

	// InvalidConfig: configuration failed to load or validate.
	InvalidConfig Kind = "INVALID_CONFIG"

	// WriteFailed: an output file could not be written.
	WriteFailed Kind = "WRITE_FAILED"
)

// messages are the diagnostics printed for each kind.
var messages = map[Kind]string{
	InvalidArguments:         "Wrong number of arguments",
	FileUnreadable:           "Unable to open coordinates file",
	EmptyOrCorruptTargetList: "Nothing to nuke or coordinates list is broken",
	InvalidRadius:            "Wrong radius of destruction",
	InvalidConfig:            "Invalid configuration",
	WriteFailed:              "Unable to write output",
}

// Error is a fatal error raised at the argument or ingestion boundary.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Message returns the diagnostic text for the error's kind.
func (e *Error) Message() string {
	if m, ok := messages[e.Kind]; ok {
		return m
	}
	return string(e.Kind)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message(), e.Err)
	}
	return e.Message()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
