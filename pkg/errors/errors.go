// Package errors provides the typed error returned by the layout codecs.
//
// Every failure carries a Kind naming the failure class and, where known, the
// dotted path and byte offset of the field being processed when it happened.
package errors

import (
	"errors"
	"fmt"
)

// Standard error functions
var (
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// Error kinds
const (
	KindTruncatedInput     = "TruncatedInput"
	KindConstantMismatch   = "ConstantMismatch"
	KindUnknownVariant     = "UnknownVariant"
	KindUnknownInstruction = "UnknownInstruction"
	KindUnsupportedEncode  = "UnsupportedEncode"
	KindMalformedEvent     = "MalformedEvent"
)

// Sentinels for errors.Is. Any *Error with the same Kind matches.
var (
	ErrTruncatedInput     = NewWithKind(KindTruncatedInput)
	ErrConstantMismatch   = NewWithKind(KindConstantMismatch)
	ErrUnknownVariant     = NewWithKind(KindUnknownVariant)
	ErrUnknownInstruction = NewWithKind(KindUnknownInstruction)
	ErrUnsupportedEncode  = NewWithKind(KindUnsupportedEncode)
	ErrMalformedEvent     = NewWithKind(KindMalformedEvent)
)

// noOffset marks an error that is not tied to a byte position.
const noOffset = -1

// Error is a custom error type for passing more information
type Error struct {
	// Kind is the failure class
	Kind string `json:"kind"`
	// Message is the human readable string that indicate the error
	Message string `json:"message"`
	// Field is the dotted path of the field being processed, e.g. "tokens[3].mint".
	Field string `json:"field,omitempty"`
	// Offset is the byte offset of Field within the decoded buffer, or -1.
	Offset int `json:"offset"`

	cause error
}

var _ error = (*Error)(nil)

func NewWithKind(kind string) *Error {
	return &Error{Kind: kind, Offset: noOffset}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind, message string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(message, args...), Offset: noOffset}
}

// Error implements error
func (e *Error) Error() string {
	str := fmt.Sprintf("[%s]", e.Kind)
	if e.Field != "" {
		str += " " + e.Field
		if e.Offset >= 0 {
			str += fmt.Sprintf(" @%d", e.Offset)
		}
		str += ":"
	}
	if e.Message != "" {
		str += " " + e.Message
	}
	if e.cause != nil {
		str += fmt.Sprintf(" (%s)", e.cause)
	}
	return str
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Wrap sets the error cause
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// Explain makes a copy of the error with given message
func (e *Error) Explain(message string, args ...any) *Error {
	err := *e
	err.Message = fmt.Sprintf(message, args...)
	return &err
}

// At returns a copy of the error annotated with a field path and offset.
// An existing annotation is kept, since the innermost field is the useful one.
func (e *Error) At(field string, offset int) *Error {
	err := *e
	if err.Field == "" {
		err.Field = field
		err.Offset = offset
	}
	return &err
}

// Is implements the needed interface for errors.Is
// It checks kind for equality
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if other, ok := target.(*Error); ok {
		return other.Kind == e.Kind
	}
	if e.cause != nil {
		return Is(e.cause, target)
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) string {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return ""
}
