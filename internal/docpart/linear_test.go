package docpart

import (
	"errors"
	"testing"
)

type structureRecorder struct {
	events []StructureChangeEvent
}

func (r *structureRecorder) StructureChanged(ev StructureChangeEvent) {
	r.events = append(r.events, ev)
}

type textRecorder struct {
	events []TextChangeEvent
}

func (r *textRecorder) TextChanged(ev TextChangeEvent) {
	r.events = append(r.events, ev)
}

// tree builds:
//
//	root
//	├── intro (leaf)
//	├── body
//	│   ├── a (leaf "deep")
//	│   └── note (leaf)
//	└── a (leaf "direct")
func tree(t *testing.T) (*Linear, *Linear) {
	t.Helper()
	root := NewLinear("root")
	body := NewLinear("body")
	mustAppend(t, body, NewLeaf("a", "deep"))
	mustAppend(t, body, NewLeaf("note", "n"))
	mustAppend(t, root, NewLeaf("intro", "i"))
	mustAppend(t, root, body)
	mustAppend(t, root, NewLeaf("a", "direct"))
	root.SetModified(false)
	return root, body
}

func mustAppend(t *testing.T, c Container, p Part) {
	t.Helper()
	if err := c.AppendPart(p); err != nil {
		t.Fatalf("append %q: %v", p.Name(), err)
	}
}

func TestLinear_AddThenRemoveFiresAddedThenRemoved(t *testing.T) {
	l := NewLinear("list")
	rec := &structureRecorder{}
	l.AddStructureListener(rec)

	x := NewLeaf("x", "")
	if err := l.AddPartAt(0, x); err != nil {
		t.Fatalf("AddPartAt: %v", err)
	}
	removed, err := l.RemovePartAt(0)
	if err != nil {
		t.Fatalf("RemovePartAt: %v", err)
	}
	if removed != x {
		t.Errorf("expected removed part to be x")
	}
	if l.Len() != 0 {
		t.Errorf("expected 0 parts, got %d", l.Len())
	}
	if len(rec.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(rec.events))
	}
	if rec.events[0].Type != PartAdded || rec.events[1].Type != PartRemoved {
		t.Errorf("expected added then removed, got %v then %v", rec.events[0].Type, rec.events[1].Type)
	}
	for i, ev := range rec.events {
		if ev.Index != 0 || ev.Involved != x || ev.Originator != l {
			t.Errorf("event[%d]: unexpected %+v", i, ev)
		}
	}
}

func TestLinear_AddPartAtDisplaces(t *testing.T) {
	l := NewLinear("list")
	mustAppend(t, l, NewLeaf("a", ""))
	mustAppend(t, l, NewLeaf("c", ""))
	if err := l.AddPartAt(1, NewLeaf("b", "")); err != nil {
		t.Fatalf("AddPartAt: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if got := l.PartAt(i).Name(); got != w {
			t.Errorf("part[%d]: expected %q, got %q", i, w, got)
		}
	}
	if l.IndexOfPart("c") != 2 {
		t.Errorf("expected c at 2, got %d", l.IndexOfPart("c"))
	}
	if l.IndexOfPart("missing") != -1 {
		t.Errorf("expected -1 for a missing name")
	}
}

func TestLinear_IndexBounds(t *testing.T) {
	l := NewLinear("list")
	tests := []struct {
		name string
		op   func() error
	}{
		{"add past end", func() error { return l.AddPartAt(1, NewLeaf("x", "")) }},
		{"add negative", func() error { return l.AddPartAt(-1, NewLeaf("x", "")) }},
		{"remove empty", func() error { _, err := l.RemovePartAt(0); return err }},
		{"set empty", func() error { _, err := l.SetPartAt(0, NewLeaf("x", "")); return err }},
		{"add nil", func() error { return l.AddPartAt(0, nil) }},
		{"add self", func() error { return l.AddPartAt(0, l) }},
	}
	for _, tt := range tests {
		if err := tt.op(); !errors.Is(err, ErrModificationNotAllowed) {
			t.Errorf("%s: expected ErrModificationNotAllowed, got %v", tt.name, err)
		}
	}
	if l.Modified() {
		t.Errorf("rejected operations must not mark the container modified")
	}
}

func TestLinear_SetPartAtFiresRemovedThenAdded(t *testing.T) {
	l := NewLinear("list")
	old := NewLeaf("a", "old")
	mustAppend(t, l, old)
	rec := &structureRecorder{}
	l.AddStructureListener(rec)

	repl := NewLeaf("a", "new")
	got, err := l.SetPartAt(0, repl)
	if err != nil {
		t.Fatalf("SetPartAt: %v", err)
	}
	if got != old {
		t.Errorf("expected the old part back")
	}
	if len(rec.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(rec.events))
	}
	if rec.events[0].Type != PartRemoved || rec.events[0].Involved != old || rec.events[0].Index != 0 {
		t.Errorf("unexpected first event %+v", rec.events[0])
	}
	if rec.events[1].Type != PartAdded || rec.events[1].Involved != repl || rec.events[1].Index != 0 {
		t.Errorf("unexpected second event %+v", rec.events[1])
	}

	// The old part is no longer followed.
	if err := old.SetText("changed"); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 2 {
		t.Errorf("detached part still reaches the container")
	}
}

func TestLinear_SetPartReplacesDirectChildFirst(t *testing.T) {
	root, body := tree(t)
	deep := body.PartAt(0)

	newA := NewLeaf("a", "replacement")
	if err := root.SetPart(newA); err != nil {
		t.Fatalf("SetPart: %v", err)
	}
	if root.PartAt(2) != newA {
		t.Errorf("expected direct child a to be replaced in place")
	}
	if body.PartAt(0) != deep {
		t.Errorf("deeper a must not be touched")
	}
	if root.Len() != 3 {
		t.Errorf("expected 3 parts, got %d", root.Len())
	}
}

func TestLinear_SetPartDelegatesToDescendantHolder(t *testing.T) {
	root, body := tree(t)
	rec := &structureRecorder{}
	root.AddStructureListener(rec)

	newNote := NewLeaf("note", "n2")
	if err := root.SetPart(newNote); err != nil {
		t.Fatalf("SetPart: %v", err)
	}
	if body.PartAt(1) != newNote {
		t.Errorf("expected body's note to be replaced")
	}
	if root.IndexOfPart("note") != -1 {
		t.Errorf("note must not be appended to root")
	}
	if len(rec.events) != 2 || rec.events[0].Originator != body {
		t.Errorf("expected 2 bubbled events from body, got %+v", rec.events)
	}
}

func TestLinear_SetPartAppendsUnknownName(t *testing.T) {
	root, _ := tree(t)
	if err := root.SetPart(NewLeaf("outro", "o")); err != nil {
		t.Fatalf("SetPart: %v", err)
	}
	if root.IndexOfPart("outro") != 3 {
		t.Errorf("expected outro appended at 3, got %d", root.IndexOfPart("outro"))
	}
}

func TestLinear_RemovePartResolution(t *testing.T) {
	root, body := tree(t)

	if _, err := root.RemovePart("a"); err != nil {
		t.Fatalf("RemovePart direct: %v", err)
	}
	if root.Len() != 2 || body.Len() != 2 {
		t.Errorf("expected only the direct a removed, root=%d body=%d", root.Len(), body.Len())
	}

	p, err := root.RemovePart("a")
	if err != nil {
		t.Fatalf("RemovePart nested: %v", err)
	}
	if p.Text() != "deep" || body.Len() != 1 {
		t.Errorf("expected nested a removed from body")
	}

	if _, err := root.RemovePart("a"); !errors.Is(err, ErrPartNotFound) {
		t.Errorf("expected ErrPartNotFound, got %v", err)
	}
}

func TestLinear_PartLookupIsDepthFirst(t *testing.T) {
	root, body := tree(t)

	if got := root.Part("a"); got != body.PartAt(0) {
		t.Errorf("expected the depth-first first match (body's a), got %v", got)
	}
	all := root.PartsNamed("a")
	if len(all) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(all))
	}
	if all[0].Text() != "deep" || all[1].Text() != "direct" {
		t.Errorf("unexpected order: %q, %q", all[0].Text(), all[1].Text())
	}
	if root.Part("missing") != nil {
		t.Errorf("expected nil for a missing name")
	}
}

func TestLinear_TextIsConcatenatedAndReadOnly(t *testing.T) {
	root, _ := tree(t)
	if got := root.Text(); got != "ideepndirect" {
		t.Errorf("unexpected text %q", got)
	}
	if got := root.String(); got != "ideepndirect" {
		t.Errorf("unexpected string %q", got)
	}
	if err := root.SetText("x"); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("expected ErrUnsupportedOperation, got %v", err)
	}
}

func TestLinear_ChangesBubbleOncePerLevel(t *testing.T) {
	root, body := tree(t)
	rootRec, bodyRec := &structureRecorder{}, &structureRecorder{}
	root.AddStructureListener(rootRec)
	body.AddStructureListener(bodyRec)

	if err := body.AppendPart(NewLeaf("extra", "")); err != nil {
		t.Fatal(err)
	}
	if len(bodyRec.events) != 1 || len(rootRec.events) != 1 {
		t.Errorf("expected one event per level, body=%d root=%d", len(bodyRec.events), len(rootRec.events))
	}
	if rootRec.events[0].Originator != body {
		t.Errorf("bubbled event must keep its originator")
	}
}

func TestLinear_ReaddingChildDoesNotDuplicateDelivery(t *testing.T) {
	root := NewLinear("root")
	child := NewLinear("child")
	mustAppend(t, root, child)
	if _, err := root.RemovePartAt(0); err != nil {
		t.Fatal(err)
	}
	mustAppend(t, root, child)
	mustAppend(t, root, child)

	rec := &structureRecorder{}
	root.AddStructureListener(rec)
	mustAppend(t, child, NewLeaf("x", ""))
	if len(rec.events) != 1 {
		t.Errorf("expected exactly 1 delivery, got %d", len(rec.events))
	}

	// Still held at index 0 after removing one occurrence.
	if _, err := root.RemovePartAt(1); err != nil {
		t.Fatal(err)
	}
	rec.events = nil
	mustAppend(t, child, NewLeaf("y", ""))
	if len(rec.events) != 1 {
		t.Errorf("expected child still followed, got %d deliveries", len(rec.events))
	}
}

func TestLinear_TextChangeBubbles(t *testing.T) {
	root, body := tree(t)
	rec := &textRecorder{}
	root.AddTextListener(rec)

	note := body.PartAt(1)
	if err := note.SetText("updated"); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 1 {
		t.Fatalf("expected 1 text event at root, got %d", len(rec.events))
	}
	ev := rec.events[0]
	if ev.Originator != note || ev.OldText != "n" || ev.NewText != "updated" {
		t.Errorf("unexpected event %+v", ev)
	}
	for _, p := range []Part{root, body, note} {
		if !p.Modified() {
			t.Errorf("%q should be modified", p.Name())
		}
	}
	if root.PartAt(0).Modified() {
		t.Errorf("sibling must stay unmodified")
	}
}

func TestLinear_ListenersNotifiedInOrderFromSnapshot(t *testing.T) {
	l := NewLinear("list")
	var order []string
	late := &orderListener{name: "late", order: &order}
	first := &orderListener{name: "first", order: &order}
	first.onEvent = func() { l.AddStructureListener(late) }
	second := &orderListener{name: "second", order: &order}
	l.AddStructureListener(first)
	l.AddStructureListener(second)

	mustAppend(t, l, NewLeaf("x", ""))
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected dispatch order %v", order)
	}

	order = nil
	first.onEvent = nil
	l.RemoveStructureListener(second)
	mustAppend(t, l, NewLeaf("y", ""))
	if len(order) != 2 || order[0] != "first" || order[1] != "late" {
		t.Errorf("unexpected dispatch order after changes %v", order)
	}
}

type orderListener struct {
	name    string
	order   *[]string
	onEvent func()
}

func (o *orderListener) StructureChanged(StructureChangeEvent) {
	*o.order = append(*o.order, o.name)
	if o.onEvent != nil {
		o.onEvent()
	}
}
