package docpart

// Document is the root of a tree documenting one target. Besides the
// structure and text listeners every part has, it reports each change
// anywhere in the tree once to its document listeners.
type Document struct {
	*Linear
	docListeners listeners[DocumentListener]
}

// NewDocument returns an empty, unmodified document for target.
func NewDocument(name string, target Target) *Document {
	d := &Document{}
	d.Linear = newLinear(name, d)
	d.target = target
	d.sink = documentSink{d}
	return d
}

func (d *Document) AddDocumentListener(l DocumentListener) {
	d.docListeners.add(l)
}

func (d *Document) RemoveDocumentListener(l DocumentListener) {
	d.docListeners.remove(l)
}

func (d *Document) EmptyCopy() Part { return NewDocument(d.name, d.target) }

func (d *Document) fireDocument(ev DocumentChangeEvent) {
	for _, l := range d.docListeners.snapshot() {
		l.DocumentChanged(ev)
	}
}

type documentSink struct {
	d *Document
}

func (s documentSink) childStructureChanged(ev StructureChangeEvent) {
	s.d.fireDocument(DocumentChangeEvent{Document: s.d, Structure: &ev})
}

func (s documentSink) childTextChanged(ev TextChangeEvent) {
	s.d.fireDocument(DocumentChangeEvent{Document: s.d, Text: &ev})
}
