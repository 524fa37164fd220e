// Package ordering moves elements of a positioned list and keeps every
// element's position field equal to its index.
package ordering

// Renumberer returns item with its position field set to position.
type Renumberer[T any] func(item T, position int) T

// Renumber returns a copy of items whose positions match their indexes.
func Renumber[T any](items []T, renumber Renumberer[T]) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = renumber(item, i)
	}
	return out
}

// CanMoveUp reports whether MoveUp would change the order.
func CanMoveUp[T any](items []T, index int) bool {
	return index > 0 && index < len(items)
}

// CanMoveDown reports whether MoveDown would change the order.
func CanMoveDown[T any](items []T, index int) bool {
	return len(items) > 1 && index >= 0 && index < len(items)-1
}

// MoveUp swaps the element at index with its predecessor. Out of range
// indexes and index 0 leave the order untouched.
func MoveUp[T any](items []T, index int, renumber Renumberer[T]) []T {
	if !CanMoveUp(items, index) {
		return Renumber(items, renumber)
	}
	return move(items, index, index-1, renumber)
}

// MoveDown swaps the element at index with its successor. The last index
// and single element lists leave the order untouched.
func MoveDown[T any](items []T, index int, renumber Renumberer[T]) []T {
	if !CanMoveDown(items, index) {
		return Renumber(items, renumber)
	}
	return move(items, index, index+1, renumber)
}

// Remove drops the element at index and closes the gap.
func Remove[T any](items []T, index int, renumber Renumberer[T]) []T {
	if index < 0 || index >= len(items) {
		return Renumber(items, renumber)
	}
	rest := make([]T, 0, len(items)-1)
	rest = append(rest, items[:index]...)
	rest = append(rest, items[index+1:]...)
	return Renumber(rest, renumber)
}

// Append adds item at the end with the next position.
func Append[T any](items []T, item T, renumber Renumberer[T]) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, item)
	return Renumber(out, renumber)
}

func move[T any](items []T, from, to int, renumber Renumberer[T]) []T {
	value := items[from]
	rest := make([]T, 0, len(items))
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	out := make([]T, 0, len(items))
	out = append(out, rest[:to]...)
	out = append(out, value)
	out = append(out, rest[to:]...)
	return Renumber(out, renumber)
}
