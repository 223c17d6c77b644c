package fsmindex

import (
	"errors"
	"fmt"
)

// InputError represents malformed automaton, alphabet, or vocabulary data
// rejected by Compile. Nothing is computed from rejected inputs.
type InputError struct {
	Input   string // "automaton", "alphabet", or "vocabulary"
	Message string // Error description
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Input, e.Message)
}

// ScanError represents a vocabulary scan that failed while resolving State.
// A failed scan voids the whole operation: Scan returns no transitions and
// Build returns no index, never partial results.
type ScanError struct {
	State int32 // automaton state whose scan failed
	Err   error // underlying failure
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan of state %d failed: %v", e.State, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// IsScanError reports whether err is a ScanError and returns the state whose
// scan failed. Returns (state, true) if err is a ScanError, or (0, false)
// otherwise.
func IsScanError(err error) (int32, bool) {
	var se *ScanError
	if errors.As(err, &se) {
		return se.State, true
	}
	return 0, false
}
