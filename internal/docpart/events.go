package docpart

// ChangeType tells whether a structural change added or removed a part.
type ChangeType int

const (
	PartAdded ChangeType = iota
	PartRemoved
)

func (t ChangeType) String() string {
	switch t {
	case PartAdded:
		return "part_added"
	case PartRemoved:
		return "part_removed"
	}
	return "unknown"
}

// StructureChangeEvent describes a change to the child list of
// Originator. Ancestors re-deliver the same event unchanged.
type StructureChangeEvent struct {
	Type       ChangeType
	Originator Part
	Involved   Part
	Index      int
}

// TextChangeEvent describes a text change of Originator.
type TextChangeEvent struct {
	Originator Part
	OldText    string
	NewText    string
}

// DocumentChangeEvent wraps exactly one of a structure or a text event
// that happened somewhere in a document.
type DocumentChangeEvent struct {
	Document  *Document
	Structure *StructureChangeEvent
	Text      *TextChangeEvent
}

// StructureListener is notified after a part's child list changed, either
// directly or anywhere below it.
type StructureListener interface {
	StructureChanged(ev StructureChangeEvent)
}

// TextListener is notified after the text of a part or one of its
// descendants changed.
type TextListener interface {
	TextChanged(ev TextChangeEvent)
}

// DocumentListener receives one aggregated notification per change in a
// document.
type DocumentListener interface {
	DocumentChanged(ev DocumentChangeEvent)
}

// listeners is a copy-on-write list: add and remove never touch the
// backing array of a previously returned snapshot, so dispatch can
// iterate a snapshot while listeners register or unregister.
//
// Listeners are matched with ==, so their dynamic types must be
// comparable (pointer types in practice).
type listeners[L comparable] struct {
	items []L
}

func (ls *listeners[L]) add(l L) {
	ls.items = append(ls.items[:len(ls.items):len(ls.items)], l)
}

func (ls *listeners[L]) remove(l L) {
	for i, item := range ls.items {
		if item == l {
			next := make([]L, 0, len(ls.items)-1)
			next = append(next, ls.items[:i]...)
			ls.items = append(next, ls.items[i+1:]...)
			return
		}
	}
}

func (ls *listeners[L]) snapshot() []L {
	return ls.items
}
