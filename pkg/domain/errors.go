package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrStepNotFound is returned (in strict mode) when a successor id is
// missing from the step table. This is a configuration-authoring defect.
var ErrStepNotFound = errors.New("step not found")

// ErrNotTerminal is returned when an estimate is requested from a session
// that has not reached the terminal step.
var ErrNotTerminal = errors.New("session has not reached the result step")
