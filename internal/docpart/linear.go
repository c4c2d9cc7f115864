package docpart

import (
	"fmt"
	"io"
	"strings"
)

// Linear is a container whose children form an ordered sequence
// addressed by index. All by-name operations resolve to an index first.
type Linear struct {
	node
	parts []Part
}

// NewLinear returns an empty, unmodified container.
func NewLinear(name string) *Linear {
	return newLinear(name, nil)
}

// newLinear builds a Linear embedded in self, so that events name the
// outer part as their originator.
func newLinear(name string, self Part) *Linear {
	l := &Linear{}
	if self == nil {
		self = l
	}
	l.node = node{self: self, name: name}
	return l
}

// Text is the concatenated text of the children.
func (l *Linear) Text() string {
	var b strings.Builder
	for _, p := range l.parts {
		b.WriteString(p.Text())
	}
	return b.String()
}

func (l *Linear) SetText(string) error {
	return fmt.Errorf("%w: %q is a container", ErrUnsupportedOperation, l.name)
}

func (l *Linear) Len() int { return len(l.parts) }

// PartAt returns the child at i, or nil when i is out of range.
func (l *Linear) PartAt(i int) Part {
	if i < 0 || i >= len(l.parts) {
		return nil
	}
	return l.parts[i]
}

func (l *Linear) Parts() []Part {
	out := make([]Part, len(l.parts))
	copy(out, l.parts)
	return out
}

// IndexOfPart returns the index of the first direct child named name,
// or -1.
func (l *Linear) IndexOfPart(name string) int {
	for i, p := range l.parts {
		if p.Name() == name {
			return i
		}
	}
	return -1
}

// AddPartAt inserts p at i, shifting later children up. 0 <= i <= Len().
func (l *Linear) AddPartAt(i int, p Part) error {
	if i < 0 || i > len(l.parts) {
		return fmt.Errorf("%w: index %d out of range [0,%d]", ErrModificationNotAllowed, i, len(l.parts))
	}
	if err := l.checkInsert(p); err != nil {
		return err
	}
	l.parts = append(l.parts, nil)
	copy(l.parts[i+1:], l.parts[i:])
	l.parts[i] = p
	l.attach(p)
	l.fireStructure(StructureChangeEvent{Type: PartAdded, Originator: l.self, Involved: p, Index: i})
	return nil
}

func (l *Linear) AppendPart(p Part) error {
	return l.AddPartAt(len(l.parts), p)
}

// RemovePartAt removes and returns the child at i. 0 <= i < Len().
func (l *Linear) RemovePartAt(i int) (Part, error) {
	if i < 0 || i >= len(l.parts) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrModificationNotAllowed, i, len(l.parts))
	}
	p := l.parts[i]
	l.parts = append(l.parts[:i], l.parts[i+1:]...)
	l.detach(p)
	l.fireStructure(StructureChangeEvent{Type: PartRemoved, Originator: l.self, Involved: p, Index: i})
	return p, nil
}

// SetPartAt replaces the child at i with p and returns the old child.
// Listeners see a PartRemoved for the old child followed by a PartAdded
// for p, both at index i.
func (l *Linear) SetPartAt(i int, p Part) (Part, error) {
	if i < 0 || i >= len(l.parts) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrModificationNotAllowed, i, len(l.parts))
	}
	if err := l.checkInsert(p); err != nil {
		return nil, err
	}
	old := l.parts[i]
	l.parts[i] = p
	l.detach(old)
	l.attach(p)
	l.fireStructure(StructureChangeEvent{Type: PartRemoved, Originator: l.self, Involved: old, Index: i})
	l.fireStructure(StructureChangeEvent{Type: PartAdded, Originator: l.self, Involved: p, Index: i})
	return old, nil
}

func (l *Linear) Part(name string) Part {
	for _, p := range l.parts {
		if p.Name() == name {
			return p
		}
		if found := p.Part(name); found != nil {
			return found
		}
	}
	return nil
}

func (l *Linear) PartsNamed(name string) []Part {
	var out []Part
	for _, p := range l.parts {
		if p.Name() == name {
			out = append(out, p)
		}
		out = append(out, p.PartsNamed(name)...)
	}
	return out
}

// SetPart stores p under its name. A direct child of that name is
// replaced in place; otherwise the container holding the first deeper
// match replaces it; otherwise p is appended here.
func (l *Linear) SetPart(p Part) error {
	if p == nil {
		return fmt.Errorf("%w: nil part", ErrModificationNotAllowed)
	}
	if i := l.IndexOfPart(p.Name()); i >= 0 {
		_, err := l.SetPartAt(i, p)
		return err
	}
	if h := holderOf(l.self.(Container), p.Name()); h != nil {
		return h.SetPart(p)
	}
	return l.AppendPart(p)
}

// RemovePart removes the part named name, resolving it the same way as
// SetPart.
func (l *Linear) RemovePart(name string) (Part, error) {
	if i := l.IndexOfPart(name); i >= 0 {
		return l.RemovePartAt(i)
	}
	if h := holderOf(l.self.(Container), name); h != nil {
		return h.RemovePart(name)
	}
	return nil, fmt.Errorf("%w: %q", ErrPartNotFound, name)
}

func (l *Linear) EmptyCopy() Part { return NewLinear(l.name) }

// WriteTo writes the children in order.
func (l *Linear) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, p := range l.parts {
		n, err := p.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (l *Linear) String() string {
	var b strings.Builder
	l.WriteTo(&b)
	return b.String()
}

func (l *Linear) checkInsert(p Part) error {
	if p == nil {
		return fmt.Errorf("%w: nil part", ErrModificationNotAllowed)
	}
	if contains(p, l.self) {
		return fmt.Errorf("%w: %q cannot hold itself", ErrModificationNotAllowed, p.Name())
	}
	return nil
}

func (l *Linear) attach(p Part) {
	p.base().parent = l
}

// detach stops following p unless it is still held at another index.
func (l *Linear) detach(p Part) {
	for _, q := range l.parts {
		if q == p {
			return
		}
	}
	if b := p.base(); b.parent == observer(l) {
		b.parent = nil
	}
}

func (l *Linear) childStructureChanged(ev StructureChangeEvent) {
	l.fireStructure(ev)
}

func (l *Linear) childTextChanged(ev TextChangeEvent) {
	l.fireText(ev)
}
