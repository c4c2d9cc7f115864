package docpart

import (
	"fmt"
	"io"
)

// Leaf is a part that holds text and no children.
type Leaf struct {
	node
	text string
}

// NewLeaf returns an unmodified leaf. An empty name marks an anonymous
// text fragment.
func NewLeaf(name, text string) *Leaf {
	l := &Leaf{text: text}
	l.node = node{self: l, name: name}
	return l
}

func (l *Leaf) Text() string { return l.text }

// SetText replaces the text. Setting the current text again does nothing.
func (l *Leaf) SetText(text string) error {
	if text == l.text {
		return nil
	}
	old := l.text
	l.text = text
	l.fireText(TextChangeEvent{Originator: l, OldText: old, NewText: text})
	return nil
}

func (l *Leaf) Part(string) Part { return nil }

func (l *Leaf) PartsNamed(string) []Part { return nil }

func (l *Leaf) SetPart(p Part) error {
	return fmt.Errorf("%w: %q holds no parts", ErrModificationNotAllowed, l.name)
}

func (l *Leaf) RemovePart(name string) (Part, error) {
	return nil, fmt.Errorf("%w: %q holds no parts", ErrModificationNotAllowed, l.name)
}

func (l *Leaf) Parts() []Part { return nil }

func (l *Leaf) EmptyCopy() Part { return NewLeaf(l.name, "") }

func (l *Leaf) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.text)
	return int64(n), err
}

func (l *Leaf) String() string { return l.text }
