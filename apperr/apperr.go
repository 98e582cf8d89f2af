// apperr defines the error kinds the HTTP layer maps to status codes.
// Library packages return these instead of bare errors so the mapping stays
// in one place.
package apperr

import "github.com/pkg/errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindInternal
)

type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string {
	return e.msg
}

// InvalidArgument reports a request the caller can fix (empty query,
// non-positive page/limit).
func InvalidArgument(msg string) error {
	return &kindError{kind: KindInvalidArgument, msg: msg}
}

// NotFound reports an absent viewer or referenced entity.
func NotFound(msg string) error {
	return &kindError{kind: KindNotFound, msg: msg}
}

// Internal wraps a data-store failure. The message is what the client sees,
// the cause stays attached for logging.
func Internal(cause error, msg string) error {
	if cause == nil {
		return &kindError{kind: KindInternal, msg: msg}
	}
	return &wrappedInternal{cause: errors.WithStack(cause), msg: msg}
}

type wrappedInternal struct {
	cause error
	msg   string
}

func (e *wrappedInternal) Error() string { return e.msg + ": " + e.cause.Error() }
func (e *wrappedInternal) Cause() error  { return e.cause }
func (e *wrappedInternal) kindOf() Kind  { return KindInternal }

func (e *kindError) kindOf() Kind { return e.kind }

type kinder interface {
	kindOf() Kind
}

// KindOf walks the cause chain and returns the first tagged kind, or
// KindUnknown when the error carries no kind.
func KindOf(err error) Kind {
	for err != nil {
		if k, ok := err.(kinder); ok {
			return k.kindOf()
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			return KindUnknown
		}
		err = cause.Cause()
	}
	return KindUnknown
}
