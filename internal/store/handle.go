package store

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/texdoc"
)

// Handle guards one open document. The document tree itself is not safe
// for concurrent use, so every access goes through Do.
type Handle struct {
	mu     sync.Mutex
	target docpart.Target
	path   string
	doc    *docpart.Document
	log    *slog.Logger
	closed bool

	changes *changeLogger
}

// Target returns the documented element.
func (h *Handle) Target() docpart.Target { return h.target }

// Do runs fn with exclusive access to the document.
func (h *Handle) Do(fn func(doc *docpart.Document) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errHandleClosed
	}
	return fn(h.doc)
}

// Save writes the document and clears its modified flag.
func (h *Handle) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errHandleClosed
	}
	return h.save()
}

// Bytes returns the TeX form of the document.
func (h *Handle) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := h.Do(func(doc *docpart.Document) error {
		return texdoc.Write(&buf, doc)
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Handle) saveIfModified() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || !h.doc.Modified() {
		return nil
	}
	return h.save()
}

// save writes to a temp file in the same directory and renames it over
// the sidecar file.
func (h *Handle) save() error {
	var buf bytes.Buffer
	if err := texdoc.Write(&buf, h.doc); err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(h.path), ".netdoc-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, h.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	h.doc.SetModified(false)
	h.log.Info("document saved", "bytes", buf.Len())
	return nil
}

// swap installs doc as the new content and saves it.
func (h *Handle) swap(doc *docpart.Document) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errHandleClosed
	}
	h.detach()
	h.attach(doc)
	return h.save()
}

func (h *Handle) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.detach()
}
