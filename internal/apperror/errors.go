package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure at an operation boundary. All kinds are recoverable:
// callers may retry or tell the user.
type Kind int

const (
	KindFetchFailed Kind = iota + 1
	KindUpdateFailed
	KindDeleteFailed
)

func (k Kind) String() string {
	switch k {
	case KindFetchFailed:
		return "FetchFailed"
	case KindUpdateFailed:
		return "UpdateFailed"
	case KindDeleteFailed:
		return "DeleteFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	ErrFetchFailed  = &Error{Kind: KindFetchFailed}
	ErrUpdateFailed = &Error{Kind: KindUpdateFailed}
	ErrDeleteFailed = &Error{Kind: KindDeleteFailed}
)

type Error struct {
	Kind   Kind
	Op     string
	UserID string
	ItemID string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.ItemID != "" {
		msg += " (item " + e.ItemID + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrUpdateFailed) works
// regardless of the op or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func FetchFailed(op, userID string, err error) *Error {
	return &Error{Kind: KindFetchFailed, Op: op, UserID: userID, Err: err}
}

func UpdateFailed(op, userID, itemID string, err error) *Error {
	return &Error{Kind: KindUpdateFailed, Op: op, UserID: userID, ItemID: itemID, Err: err}
}

func DeleteFailed(op, userID, itemID string, err error) *Error {
	return &Error{Kind: KindDeleteFailed, Op: op, UserID: userID, ItemID: itemID, Err: err}
}

// KindOf reports the kind carried by err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
