package kmp

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every error reporting an absent input.
//
//	if errors.Is(err, kmp.ErrInvalidArgument) {
//	    // skip the record
//	}
var ErrInvalidArgument = errors.New("kmp: invalid argument")

// ErrorKind classifies search errors.
type ErrorKind uint8

const (
	// InvalidArgument indicates that text or pattern was absent (nil).
	InvalidArgument ErrorKind = iota
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is returned when a search cannot run.
type Error struct {
	Kind ErrorKind

	// Arg names the offending argument ("text" or "pattern").
	Arg string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("kmp: invalid argument: %s is absent", e.Arg)
}

// Unwrap returns the sentinel for the error kind, so errors.Is works with
// ErrInvalidArgument.
func (e *Error) Unwrap() error {
	if e.Kind == InvalidArgument {
		return ErrInvalidArgument
	}
	return nil
}

func invalidArgument(arg string) error {
	return &Error{Kind: InvalidArgument, Arg: arg}
}
