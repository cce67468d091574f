package statemachine

// Builder provides a fluent API for filling a Table.
type Builder[S, E comparable] struct {
	table   *Table[S, E]
	current Transition[S, E]
}

// NewBuilder creates a builder over an empty table.
func NewBuilder[S, E comparable]() *Builder[S, E] {
	return &Builder[S, E]{table: NewTable[S, E]()}
}

// From sets the starting state for the transition being built.
func (b *Builder[S, E]) From(state S) *Builder[S, E] {
	b.current = Transition[S, E]{From: state}
	return b
}

// When sets the triggering event.
func (b *Builder[S, E]) When(event E) *Builder[S, E] {
	b.current.Event = event
	return b
}

// To sets the target state.
func (b *Builder[S, E]) To(state S) *Builder[S, E] {
	b.current.To = state
	return b
}

// WithGuard adds a guard to the transition being built.
func (b *Builder[S, E]) WithGuard(g Guard[S, E]) *Builder[S, E] {
	b.current.Guards = append(b.current.Guards, g)
	return b
}

// Add commits the transition being built.
func (b *Builder[S, E]) Add() *Builder[S, E] {
	b.table.Add(b.current)
	b.current = Transition[S, E]{}
	return b
}

// Build returns the filled table.
func (b *Builder[S, E]) Build() *Table[S, E] {
	return b.table
}
