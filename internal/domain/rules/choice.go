package rules

// Choice is one entry of a weighted choice table: an item and its integer
// probability weight. Weights are relative and need not sum to 100.
type Choice[T any] struct {
	Object      T
	Probability int
}

// WeightedList is an ordered list of weighted choices. The zero value is
// the canonical empty table; it is ready to use.
type WeightedList[T any] struct {
	choices []Choice[T]
}

// Add appends a choice. Entries are never merged by item.
func (l *WeightedList[T]) Add(obj T, probability int) {
	l.choices = append(l.choices, Choice[T]{Object: obj, Probability: probability})
}

// Choices returns the entries in insertion order. The returned slice is a
// copy; an empty table yields an empty slice, never nil semantics callers
// must guard against.
func (l *WeightedList[T]) Choices() []Choice[T] {
	out := make([]Choice[T], len(l.choices))
	copy(out, l.choices)
	return out
}

// Len returns the number of entries.
func (l *WeightedList[T]) Len() int {
	return len(l.choices)
}

// Clear removes all entries.
func (l *WeightedList[T]) Clear() {
	l.choices = nil
}
