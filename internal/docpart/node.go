package docpart

// observer is how a container follows the parts it holds. Each part has
// at most one, so attaching a part twice to the same container cannot
// duplicate deliveries.
type observer interface {
	childStructureChanged(ev StructureChangeEvent)
	childTextChanged(ev TextChangeEvent)
}

// node carries the state every part shares.
type node struct {
	self     Part
	name     string
	target   Target
	version  string
	modified bool

	// parent is the container holding this part; sink is set only on a
	// document root and receives changes after the root's own listeners.
	parent observer
	sink   observer

	structureListeners listeners[StructureListener]
	textListeners      listeners[TextListener]
}

func (n *node) base() *node { return n }

func (n *node) Name() string { return n.name }

func (n *node) Target() Target { return n.target }

func (n *node) SetTarget(t Target) { n.target = t }

func (n *node) Version() string { return n.version }

func (n *node) SetVersion(v string) { n.version = v }

func (n *node) Modified() bool { return n.modified }

func (n *node) SetModified(m bool) {
	n.modified = m
	if m {
		return
	}
	for _, child := range n.self.Parts() {
		child.SetModified(false)
	}
}

func (n *node) AddStructureListener(l StructureListener) {
	n.structureListeners.add(l)
}

func (n *node) RemoveStructureListener(l StructureListener) {
	n.structureListeners.remove(l)
}

func (n *node) AddTextListener(l TextListener) {
	n.textListeners.add(l)
}

func (n *node) RemoveTextListener(l TextListener) {
	n.textListeners.remove(l)
}

// fireStructure marks the part modified, notifies its listeners in
// registration order and passes the event on to the parent.
func (n *node) fireStructure(ev StructureChangeEvent) {
	n.modified = true
	for _, l := range n.structureListeners.snapshot() {
		l.StructureChanged(ev)
	}
	if n.parent != nil {
		n.parent.childStructureChanged(ev)
	}
	if n.sink != nil {
		n.sink.childStructureChanged(ev)
	}
}

func (n *node) fireText(ev TextChangeEvent) {
	n.modified = true
	for _, l := range n.textListeners.snapshot() {
		l.TextChanged(ev)
	}
	if n.parent != nil {
		n.parent.childTextChanged(ev)
	}
	if n.sink != nil {
		n.sink.childTextChanged(ev)
	}
}
