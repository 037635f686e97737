package repository

import "errors"

var ErrUserNotFound = errors.New("user not found")

// OpError reports which statement of a multi-statement write failed.
// The enclosing transaction has been rolled back when it is returned.
type OpError struct {
	Op  string // e.g. "inserting part"
	Err error
}

func (e *OpError) Error() string { return "error " + e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, err error) error {
	return &OpError{Op: op, Err: err}
}
