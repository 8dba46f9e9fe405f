package vcd

import "errors"

var (
	// ErrMalformedHeader means the stream ended before $enddefinitions.
	ErrMalformedHeader = errors.New("malformed VCD header")

	// ErrSignalNotFound means a requested signal path is not declared in
	// the VCD header.
	ErrSignalNotFound = errors.New("signal path not found")

	// ErrInvalidFormat means a display format code is not one of
	// b, d, u, x, X.
	ErrInvalidFormat = errors.New("invalid format character")

	// ErrUnexpectedToken means a dump-section line begins with a character
	// the VCD subset does not define.
	ErrUnexpectedToken = errors.New("unexpected character in VCD dump")

	// ErrNoSignals means an extraction was started with an empty signal
	// mapping.
	ErrNoSignals = errors.New("no signals to process")
)
