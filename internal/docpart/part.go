// Package docpart is the NetDoc document model: a tree of named,
// text-bearing parts that reports structural and textual changes to its
// listeners and tracks whether it has been modified since the last save.
//
// The tree is not safe for concurrent use. All mutation and listener
// dispatch must happen on one goroutine at a time; callers that share a
// tree serialize access themselves.
package docpart

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrUnsupportedOperation is returned when a part cannot perform an
	// operation at all, e.g. setting the text of a container.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrModificationNotAllowed is returned for a structural change the
	// part or position does not accept.
	ErrModificationNotAllowed = errors.New("modification not allowed")

	// ErrPartNotFound is returned when no part carries the requested name.
	ErrPartNotFound = errors.New("part not found")
)

// Target is the diagram element a document describes. The model only
// stores it.
type Target interface {
	ID() string
	Name() string
}

// Part is a node of a document tree.
type Part interface {
	Name() string
	Text() string
	SetText(text string) error

	Target() Target
	SetTarget(t Target)
	Version() string
	SetVersion(v string)

	// Modified reports whether the part or anything below it changed.
	Modified() bool
	// SetModified(false) clears the flag on the whole subtree.
	// SetModified(true) marks only this part.
	SetModified(m bool)

	// Part returns the first part named name in a depth-first search
	// below this part, or nil.
	Part(name string) Part
	// PartsNamed returns every part named name below this part in
	// depth-first order.
	PartsNamed(name string) []Part
	SetPart(p Part) error
	RemovePart(name string) (Part, error)
	// Parts returns the direct children.
	Parts() []Part

	// EmptyCopy returns a new part of the same concrete type and name
	// without text or children.
	EmptyCopy() Part

	AddStructureListener(l StructureListener)
	RemoveStructureListener(l StructureListener)
	AddTextListener(l TextListener)
	RemoveTextListener(l TextListener)

	io.WriterTo
	fmt.Stringer

	base() *node
}

// Container is a part whose children form an ordered sequence.
type Container interface {
	Part
	Len() int
	PartAt(i int) Part
	AddPartAt(i int, p Part) error
	RemovePartAt(i int) (Part, error)
	SetPartAt(i int, p Part) (Part, error)
	IndexOfPart(name string) int
	AppendPart(p Part) error
}

// Clone returns a deep copy of p. The copy has the same concrete type,
// name, text, version, target and modified state, and its children are
// clones too. Listeners are not copied.
func Clone(p Part) Part {
	c := p.EmptyCopy()
	cb, pb := c.base(), p.base()
	cb.target = pb.target
	cb.version = pb.version

	switch cc := c.(type) {
	case Container:
		for _, child := range p.Parts() {
			// The copy is fresh and unattached, so appending cannot fail.
			_ = cc.AppendPart(Clone(child))
		}
	case *Leaf:
		if cc.text != p.Text() {
			cc.text = p.Text()
		}
	}
	cb.modified = pb.modified
	return c
}

// Walk visits p and its descendants depth-first. Returning false from fn
// skips the children of the part just visited.
func Walk(p Part, fn func(p Part, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p Part, depth int, fn func(Part, int) bool) {
	if !fn(p, depth) {
		return
	}
	for _, child := range p.Parts() {
		walk(child, depth+1, fn)
	}
}

// contains reports whether needle is root or lies below it.
func contains(root, needle Part) bool {
	found := false
	Walk(root, func(p Part, _ int) bool {
		if p == needle {
			found = true
		}
		return !found
	})
	return found
}

// holderOf returns the container that directly holds the first part
// named name in a depth-first search below c, or nil.
func holderOf(c Container, name string) Container {
	for _, p := range c.Parts() {
		if p.Name() == name {
			return c
		}
		if pc, ok := p.(Container); ok {
			if h := holderOf(pc, name); h != nil {
				return h
			}
		}
	}
	return nil
}
