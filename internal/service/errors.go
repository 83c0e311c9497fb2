package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Error kinds surfaced by the service layer. Handlers map them to HTTP
// statuses with errors.Is; messages on NotFound/Conflict/Invalid are safe
// for direct user display.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrInvalid     = errors.New("invalid input")
	ErrPersistence = errors.New("persistence failure")
)

type svcError struct {
	kind error
	msg  string
}

func (e *svcError) Error() string { return e.msg }
func (e *svcError) Unwrap() error { return e.kind }

func notFoundf(format string, args ...any) error {
	return &svcError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &svcError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func invalidf(format string, args ...any) error {
	return &svcError{kind: ErrInvalid, msg: fmt.Sprintf(format, args...)}
}

// Kind predicates for callers outside the package.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
func IsInvalid(err error) bool  { return errors.Is(err, ErrInvalid) }

// persistence logs the storage error with its operation context and returns
// a generic failure that never leaks driver internals to the caller.
func persistence(op string, err error) error {
	log.Error().Str("op", op).Err(err).Msg("storage operation failed")
	return &svcError{kind: ErrPersistence, msg: "storage operation failed"}
}
