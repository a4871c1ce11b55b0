package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned by login for unknown users and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken indicates a malformed token or a bad signature.
var ErrInvalidToken = errors.New("invalid token")

// ErrExpired indicates a token past its expiry.
var ErrExpired = errors.New("token expired")

// ErrUserNotFound indicates a valid token whose subject has no user record.
var ErrUserNotFound = errors.New("user not found")

// ErrUserInactive indicates a user whose active flag is off.
var ErrUserInactive = errors.New("user inactive")
