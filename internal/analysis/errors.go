// Package analysis implements the cryptanalysis engine for shift (Caesar)
// and polyalphabetic (Vigenère) substitution ciphers.
//
// Every exported function is a pure computation over its arguments: the
// reference language is passed in explicitly and no state is shared, so
// callers may run them concurrently without synchronization.
package analysis

import "errors"

var (
	// ErrInvalidArgument reports a length or shift parameter outside its range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyKey reports a Vigenère operation invoked without key letters.
	ErrEmptyKey = errors.New("empty key")
)
