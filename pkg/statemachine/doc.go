// Package statemachine provides a stateless, thread-safe transition table.
//
// A Table does not hold a current state; callers pass the state they loaded
// from storage and receive the next one. This suits records whose state lives
// in a database row rather than in memory.
//
//	table := statemachine.NewBuilder[Status, Event]().
//		From(Inactive).When(Activate).To(Active).Add().
//		From(Active).When(Login).To(Active).WithGuard(notLocked).Add().
//		Build()
//
//	next, err := table.Next(ctx, Inactive, Activate, user)
//
// When several transitions share a from/event pair the first one whose guards
// all pass wins. Failures are reported as *ErrNoTransitionAvailable or
// *ErrTransitionRejected.
package statemachine
