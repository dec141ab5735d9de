/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ingesterr classifies ingest-pipeline failures so the CLI can
// choose the right exit code: a validation failure in one source should
// not look the same as a fatal fetch error.
package ingesterr

import "errors"

// Class distinguishes a diagnosable validation problem from a failure
// that stops the ingest run outright.
type Class int

const (
	// ClassValidation means the input was invalid: a bad configuration,
	// a DTCG document that failed structural validation, or a strict run
	// that reported warnings. It is also the class of unclassified errors.
	ClassValidation Class = iota
	// ClassFatal means the pipeline could not produce a result at all.
	ClassFatal
)

func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Class so callers up the stack
// (the CLI's exit-code logic, in particular) can branch on severity
// without string-matching messages.
type Error struct {
	Class Class
	Err   error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given class. Returns nil if err is nil.
func New(class Class, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Class: class, Err: err}
}

// ClassOf reports the Class of err, defaulting to ClassValidation for
// errors that were never classified through New (e.g. plain cobra usage
// errors from commands outside the ingest pipeline).
func ClassOf(err error) Class {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Class
	}
	return ClassValidation
}

// Sentinel errors for conditions the ingest pipeline specifically names.
var (
	ErrBothLocatorsSet      = errors.New("source has both a local path and a remote url set")
	ErrNoLocatorSet         = errors.New("source has neither a local path nor a remote url set")
	ErrDTCGInvalid          = errors.New("dtcg document failed structural validation")
	ErrVariablesFetchFailed = errors.New("figma variables fetch failed")
	ErrUnsupportedType      = errors.New("unsupported token type")
	ErrAliasNotFound        = errors.New("alias reference does not resolve to a known token")
	ErrCircularReference    = errors.New("circular alias reference")
)
