package com

import (
	"github.com/pkg/errors"
)

// Object is an automation object reachable through IDispatch.
//
// Get and Call return plain Go values converted from the result VARIANT
// (string, bool, the integer and float kinds, time.Time or nil).
// GetObject and CallObject return the result as another Object which the
// caller must Release.
type Object interface {
	// Get reads a property.
	Get(name string, args ...any) (any, error)
	// GetObject reads a property that holds another automation object.
	GetObject(name string, args ...any) (Object, error)
	// Put writes a property. The last argument is the value.
	Put(name string, args ...any) error
	// Call invokes a method.
	Call(name string, args ...any) (any, error)
	// CallObject invokes a method that returns another automation object.
	CallObject(name string, args ...any) (Object, error)
	// Release releases the underlying interface.
	Release()
}

// Connector connects to an automation server by ProgID. attached reports
// whether an already running instance was used.
type Connector interface {
	Connect(progID string) (obj Object, attached bool, err error)
}

// ErrNotObject is returned when a member does not hold an automation object.
var ErrNotObject = errors.New("result is not an automation object")

// Error describes a failed member access.
type Error struct {
	Member string
	Err    error
}

func (e *Error) Error() string {
	return e.Member + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause lets github.com/pkg/errors unwrap COM failures.
func (e *Error) Cause() error {
	return e.Err
}

func memberError(member string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Member: member, Err: err}
}
