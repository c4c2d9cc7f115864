package store

import (
	"log/slog"

	"github.com/dgallion1/netdoc/internal/docpart"
)

// changeLogger records every change of an open document at debug level.
type changeLogger struct {
	log *slog.Logger
}

func (c *changeLogger) DocumentChanged(ev docpart.DocumentChangeEvent) {
	switch {
	case ev.Structure != nil:
		c.log.Debug("document structure changed",
			"change", ev.Structure.Type.String(),
			"originator", ev.Structure.Originator.Name(),
			"involved", ev.Structure.Involved.Name(),
			"index", ev.Structure.Index,
		)
	case ev.Text != nil:
		c.log.Debug("document text changed",
			"originator", ev.Text.Originator.Name(),
			"old_len", len(ev.Text.OldText),
			"new_len", len(ev.Text.NewText),
		)
	}
}

// attach makes doc the handle's document and starts logging its changes.
func (h *Handle) attach(doc *docpart.Document) {
	h.doc = doc
	h.changes = &changeLogger{log: h.log}
	doc.AddDocumentListener(h.changes)
}

func (h *Handle) detach() {
	if h.doc == nil || h.changes == nil {
		return
	}
	h.doc.RemoveDocumentListener(h.changes)
	h.changes = nil
}
