package goAuthz

import "errors"

var (
	// ErrUnknownRoleName reports a role string that is not one of the
	// built-in role names.
	ErrUnknownRoleName = errors.New("unknown role")
	// ErrInvalidClaims reports claims that fail structural validation.
	ErrInvalidClaims = errors.New("invalid claims")
	// ErrUnauthenticated reports a request without usable claims.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrTokenExpired reports claims whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrPermissionDenied reports claims that lack a required permission.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidConfig reports an unusable Config.
	ErrInvalidConfig = errors.New("invalid config")
)
