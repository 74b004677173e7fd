package contexts

import "testing"

func TestWindowEmpty(t *testing.T) {
	if views := Window[int](nil); views != nil {
		t.Fatalf("expected no views for empty input, got %v", views)
	}
}

func TestWindowSingle(t *testing.T) {
	views := Window([]string{"only"})
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	view := views[0]
	if view.Prev != nil || view.Next != nil {
		t.Fatalf("single element must have no neighbors: %+v", view)
	}
	if view.Curr == nil || *view.Curr != "only" {
		t.Fatalf("curr = %v", view.Curr)
	}
}

func TestWindowNeighbors(t *testing.T) {
	views := Window([]int{10, 20, 30})
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}

	if views[0].Prev != nil {
		t.Fatalf("first view has a prev")
	}
	if views[2].Next != nil {
		t.Fatalf("last view has a next")
	}

	mid := views[1]
	if mid.Prev == nil || *mid.Prev != 10 {
		t.Fatalf("mid.Prev = %v, want 10", mid.Prev)
	}
	if mid.Curr == nil || *mid.Curr != 20 {
		t.Fatalf("mid.Curr = %v, want 20", mid.Curr)
	}
	if mid.Next == nil || *mid.Next != 30 {
		t.Fatalf("mid.Next = %v, want 30", mid.Next)
	}
}

func TestProjectFlattensAbsence(t *testing.T) {
	type slot struct{ value *string }

	a := "a"
	c := "c"
	items := []slot{{value: &a}, {value: nil}, {value: &c}}
	views := Window(items)

	project := func(s slot) *string { return s.value }

	mid := Project(views[1], project)
	// Curr's projection returned nil; both layers collapse to one.
	if mid.Curr != nil {
		t.Fatalf("expected flattened nil curr, got %v", mid.Curr)
	}
	if mid.Prev == nil || *mid.Prev != "a" {
		t.Fatalf("mid.Prev = %v, want a", mid.Prev)
	}
	if mid.Next == nil || *mid.Next != "c" {
		t.Fatalf("mid.Next = %v, want c", mid.Next)
	}

	first := Project(views[0], project)
	// Prev is absent in the sequence itself.
	if first.Prev != nil {
		t.Fatalf("expected nil prev at the first position, got %v", first.Prev)
	}
	if first.Next != nil {
		t.Fatalf("projection of an absent value must stay nil, got %v", first.Next)
	}
}
