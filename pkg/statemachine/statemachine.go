package statemachine

import (
	"context"
	"sync"
)

// Guard evaluates whether a transition is allowed for the given data.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Transition defines a state change triggered by an event.
type Transition[S, E comparable] struct {
	From   S
	To     S
	Event  E
	Guards []Guard[S, E] // All must pass
}

type key[S, E comparable] struct {
	from  S
	event E
}

// Table maps (state, event) pairs to transitions.
type Table[S, E comparable] struct {
	mu          sync.RWMutex
	transitions map[key[S, E]][]Transition[S, E]
}

// NewTable returns an empty table.
func NewTable[S, E comparable]() *Table[S, E] {
	return &Table[S, E]{transitions: make(map[key[S, E]][]Transition[S, E])}
}

// Add registers a transition. Transitions for the same pair are tried in
// registration order.
func (t *Table[S, E]) Add(tr Transition[S, E]) {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := key[S, E]{from: tr.From, event: tr.Event}
	t.transitions[k] = append(t.transitions[k], tr)
}

// Next returns the target state for event fired in from.
func (t *Table[S, E]) Next(ctx context.Context, from S, event E, data any) (S, error) {
	t.mu.RLock()
	candidates := t.transitions[key[S, E]{from: from, event: event}]
	t.mu.RUnlock()

	if len(candidates) == 0 {
		return from, &ErrNoTransitionAvailable{State: from, Event: event}
	}

	for _, tr := range candidates {
		if guardsPass(ctx, tr.Guards, from, event, data) {
			return tr.To, nil
		}
	}

	return from, &ErrTransitionRejected{State: from, Event: event}
}

// Can reports whether Next would succeed.
func (t *Table[S, E]) Can(ctx context.Context, from S, event E, data any) bool {
	_, err := t.Next(ctx, from, event, data)
	return err == nil
}

// Events lists the events that have at least one transition out of from.
// Guards are not evaluated.
func (t *Table[S, E]) Events(from S) []E {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var events []E
	for k := range t.transitions {
		if k.from == from {
			events = append(events, k.event)
		}
	}
	return events
}

func guardsPass[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
