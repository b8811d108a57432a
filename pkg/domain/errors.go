package domain

import (
	"errors"
	"fmt"
)

// ErrScenarioNotFound is returned when a scenario ID is not present in the store.
var ErrScenarioNotFound = errors.New("scenario not found")

// ErrNodeNotFound is returned when a node ID is not part of the requested scenario.
var ErrNodeNotFound = errors.New("node not found")

// ErrNoScenarios is returned when a source yields an empty collection.
var ErrNoScenarios = errors.New("no scenarios found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// LoadError reports that the scenario resource could not be read or parsed.
// It is fatal to initialization: no scenario can be shown without data.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load scenarios: %v", e.Err)
	}
	return fmt.Sprintf("load scenarios from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
