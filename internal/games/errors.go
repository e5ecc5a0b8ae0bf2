package games

import (
	"errors"
	"fmt"
)

// ErrorKind classifies action rejections. Every rejection leaves game
// state untouched; none of these are fatal to the process.
type ErrorKind int

const (
	// KindStructural covers unknown types, missing games, full rosters
	// and duplicate joins.
	KindStructural ErrorKind = iota
	// KindPhase covers actions submitted in the wrong status or phase.
	KindPhase
	// KindAuthorization covers actions from players outside the roster
	// or not holding the required role.
	KindAuthorization
	// KindPayload covers malformed action content.
	KindPayload
)

func (k ErrorKind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindPhase:
		return "phase"
	case KindAuthorization:
		return "authorization"
	case KindPayload:
		return "payload"
	default:
		return "unknown"
	}
}

// Error is a classified action rejection
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Structuralf builds a structural rejection
func Structuralf(format string, args ...any) error {
	return &Error{Kind: KindStructural, Message: fmt.Sprintf(format, args...)}
}

// Phasef builds a wrong-status/wrong-phase rejection
func Phasef(format string, args ...any) error {
	return &Error{Kind: KindPhase, Message: fmt.Sprintf(format, args...)}
}

// Authorizationf builds a wrong-player/wrong-role rejection
func Authorizationf(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// Payloadf builds a malformed-content rejection
func Payloadf(format string, args ...any) error {
	return &Error{Kind: KindPayload, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification from an error returned by the
// engine. The second result is false for unclassified errors.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is an engine rejection of the given kind
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
