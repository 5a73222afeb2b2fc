// Package errkind classifies harness failures so the command line can map
// them to exit codes without inspecting message text.
package errkind

import (
	"errors"
	"fmt"
)

// Kind is the category of a failure. A Kind is itself an error so it can be
// used as an errors.Is target.
type Kind int

const (
	// Unknown is reported for errors that carry no kind.
	Unknown Kind = iota
	// Usage covers missing or malformed command-line flags.
	Usage
	// Validation covers out-of-range case fields, durations, rates and
	// mismatched sample rates.
	Validation
	// Resource covers missing, unreadable or unwritable files and directories.
	Resource
	// Plugin covers plugin discovery, instantiation, layout and parameter failures.
	Plugin
	// DataIntegrity reports non-finite samples in an output buffer.
	DataIntegrity
)

func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage"
	case Validation:
		return "validation"
	case Resource:
		return "resource"
	case Plugin:
		return "plugin"
	case DataIntegrity:
		return "data integrity"
	default:
		return "unknown"
	}
}

// Error implements error.
func (k Kind) Error() string {
	return k.String() + " error"
}

// Error is a classified failure with a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// New returns an error of the given kind.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err, prefixing it with a message. A nil err yields nil.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Classify tags err with kind without adding a message. A nil err yields nil.
func Classify(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Msg
	case e.Msg == "":
		return e.Err.Error()
	default:
		return e.Msg + ": " + e.Err.Error()
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a Kind target against the error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Of returns the outermost kind found in err's chain.
func Of(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// ExitCode maps err to the process exit status: 0 for nil, 2 for data
// integrity failures and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, DataIntegrity):
		return 2
	default:
		return 1
	}
}
