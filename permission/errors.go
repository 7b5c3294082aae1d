package permission

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidBits reports a numeric permission value carrying bits outside
	// the named set.
	ErrInvalidBits = errors.New("invalid permission bits")
	// ErrNegativeValue reports a negative numeric permission value.
	ErrNegativeValue = errors.New("permissions cannot be negative")
	// ErrUnknownPermissionName reports a name token that matches no permission.
	ErrUnknownPermissionName = errors.New("unknown permission")
	// ErrUnexpectedType reports wire data that is neither a number nor a string.
	ErrUnexpectedType = errors.New("expected a number or permission string")
	// ErrInvalidLength reports a binary-encoded set of the wrong size.
	ErrInvalidLength = errors.New("invalid permission set encoding length")

	ErrRoleManagerFrozen = errors.New("role manager frozen")
	ErrRoleNameEmpty     = errors.New("role name empty")
	ErrRoleExists        = errors.New("role already registered")
)

// ParseError is returned by every decode path. Kind is one of the sentinel
// errors above (or a caller-supplied sentinel such as an unknown role name)
// and is matched with errors.Is. Input is the offending token or value.
type ParseError struct {
	Kind  error
	Input string
}

// Error names the kind and, when known, the offending input.
func (e *ParseError) Error() string {
	if e.Input == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strconv.Quote(e.Input)
}

// Unwrap returns Kind so errors.Is matches the sentinel.
func (e *ParseError) Unwrap() error { return e.Kind }
