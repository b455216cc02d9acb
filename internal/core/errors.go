package core

import (
	"errors"
	"fmt"
)

// ErrTimeout marks a collaborator call that hit its deadline.
var ErrTimeout = errors.New("timeout")

// TransportError is a room connect or publish failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a completion or remote memory API failure.
type ServiceError struct {
	Service    string
	Op         string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: http %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was caused by a deadline.
func (e *ServiceError) Timeout() bool { return errors.Is(e.Err, ErrTimeout) }

// PersistenceError is a local snapshot or database read/write failure.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DecodeError is a malformed inbound payload.
type DecodeError struct {
	Sender string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode payload from %s: %v", e.Sender, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
