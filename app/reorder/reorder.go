// Package reorder stages drag-and-drop orderings until they are saved.
package reorder

import "slices"

// Move returns a copy of items with the element at from placed at to.
// Out-of-range indexes are clamped.
func Move[T any](items []T, from, to int) []T {
	out := slices.Clone(items)
	if len(out) < 2 || from < 0 || from >= len(out) {
		return out
	}
	to = max(0, min(to, len(out)-1))
	if from == to {
		return out
	}
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}

// Staged keeps the order the backend holds next to the order on screen.
type Staged[T comparable] struct {
	Original []T `json:"original"`
	Current  []T `json:"current"`
}

func NewStaged[T comparable](ids []T) *Staged[T] {
	return &Staged[T]{Original: slices.Clone(ids), Current: slices.Clone(ids)}
}

func (s *Staged[T]) Move(from, to int) {
	s.Current = Move(s.Current, from, to)
}

func (s *Staged[T]) MoveUp(i int)   { s.Move(i, i-1) }
func (s *Staged[T]) MoveDown(i int) { s.Move(i, i+1) }

// MoveID moves the element equal to id to index to. It reports false when
// id is not staged.
func (s *Staged[T]) MoveID(id T, to int) bool {
	i := slices.Index(s.Current, id)
	if i < 0 {
		return false
	}
	s.Move(i, to)
	return true
}

// Changed reports whether saving would send anything new.
func (s *Staged[T]) Changed() bool {
	return !slices.Equal(s.Original, s.Current)
}

func (s *Staged[T]) Order() []T {
	return slices.Clone(s.Current)
}

// Commit makes the current order the new baseline.
func (s *Staged[T]) Commit() {
	s.Original = slices.Clone(s.Current)
}

func (s *Staged[T]) Reset() {
	s.Current = slices.Clone(s.Original)
}

// Matches reports whether ids holds the same elements as the staged set,
// ignoring order. A draft that no longer matches the backend is stale.
func (s *Staged[T]) Matches(ids []T) bool {
	if len(ids) != len(s.Original) {
		return false
	}
	seen := make(map[T]int, len(ids))
	for _, id := range s.Original {
		seen[id]++
	}
	for _, id := range ids {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}
