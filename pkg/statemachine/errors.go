package statemachine

import (
	"errors"
	"fmt"
)

// ErrNoTransitionAvailable indicates no transition is registered for the state/event pair.
type ErrNoTransitionAvailable struct {
	State any
	Event any
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("no transition available from state '%v' for event '%v'", e.State, e.Event)
}

// ErrTransitionRejected indicates every candidate transition was blocked by a guard.
type ErrTransitionRejected struct {
	State any
	Event any
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("transition from state '%v' for event '%v' was rejected by guards", e.State, e.Event)
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}
