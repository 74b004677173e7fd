// Package contexts provides a generic sliding window over a slice, exposing
// each element together with read-only access to its immediate neighbors.
package contexts

// Context is the view at one position of a sequence. Prev and Next are nil
// at the edges; Curr is nil only after a projection removed the value.
type Context[T any] struct {
	Prev *T
	Curr *T
	Next *T
}

// Window returns one Context per element of items, in order. The first
// position has a nil Prev and the last a nil Next. The views alias the
// backing array of items; callers must not mutate items while holding them.
func Window[T any](items []T) []Context[T] {
	if len(items) == 0 {
		return nil
	}
	views := make([]Context[T], len(items))
	for i := range items {
		view := Context[T]{Curr: &items[i]}
		if i > 0 {
			view.Prev = &items[i-1]
		}
		if i+1 < len(items) {
			view.Next = &items[i+1]
		}
		views[i] = view
	}
	return views
}

// Project applies fn to each present slot of c. A slot that is absent in c,
// or for which fn returns nil, is absent in the result: the two layers of
// "no value here" collapse into one.
func Project[T, U any](c Context[T], fn func(T) *U) Context[U] {
	var out Context[U]
	if c.Prev != nil {
		out.Prev = fn(*c.Prev)
	}
	if c.Curr != nil {
		out.Curr = fn(*c.Curr)
	}
	if c.Next != nil {
		out.Next = fn(*c.Next)
	}
	return out
}
