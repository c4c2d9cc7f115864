// Package store keeps NetDoc documents as sidecar files, one
// <target>.netdoc.tex per documented diagram element, and hands out
// open documents from a small cache.
package store

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/texdoc"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Extension is appended to the target ID to form the sidecar file name.
const Extension = ".netdoc.tex"

var (
	// ErrInvalidTarget is returned for target IDs that cannot name a file.
	ErrInvalidTarget = errors.New("invalid target id")

	errHandleClosed = errors.New("document handle closed")

	validID = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)
)

// FileTarget is a target known only by its ID and a display name.
type FileTarget struct {
	TargetID string
	Label    string
}

func (t FileTarget) ID() string { return t.TargetID }

func (t FileTarget) Name() string {
	if t.Label == "" {
		return t.TargetID
	}
	return t.Label
}

// Store loads and saves documents under a data directory.
type Store struct {
	dir     string
	version string
	log     *slog.Logger

	mu    sync.Mutex
	cache *lru.Cache[string, *Handle]
}

// New creates the data directory if needed. cacheSize bounds the number
// of open documents; a modified document pushed out of the cache is
// saved first. New documents carry version.
func New(dir string, cacheSize int, version string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir, version: version, log: log}
	cache, err := lru.NewWithEvict[string, *Handle](cacheSize, s.evicted)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

// Open returns the handle of target's document, loading it from disk or
// starting an empty one.
func (s *Store) Open(target docpart.Target) (*Handle, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.cache.Get(target.ID()); ok {
		return h, nil
	}
	doc, err := s.load(target)
	if err != nil {
		return nil, err
	}
	h := s.newHandle(target, doc)
	s.cache.Add(target.ID(), h)
	return h, nil
}

// Update runs fn on target's document under the document lock.
func (s *Store) Update(target docpart.Target, fn func(doc *docpart.Document) error) error {
	return s.withHandle(target, func(h *Handle) error {
		return h.Do(fn)
	})
}

// Export returns the TeX form of target's document.
func (s *Store) Export(target docpart.Target) ([]byte, error) {
	var data []byte
	err := s.withHandle(target, func(h *Handle) error {
		var err error
		data, err = h.Bytes()
		return err
	})
	return data, err
}

// Save writes target's document to disk.
func (s *Store) Save(target docpart.Target) error {
	return s.withHandle(target, func(h *Handle) error {
		return h.Save()
	})
}

// withHandle runs fn on the open handle of target. A handle evicted
// between Open and fn is loaded again.
func (s *Store) withHandle(target docpart.Target, fn func(h *Handle) error) error {
	for {
		h, err := s.Open(target)
		if err != nil {
			return err
		}
		err = fn(h)
		if errors.Is(err, errHandleClosed) {
			continue
		}
		return err
	}
}

// Replace parses r as target's new document and saves it. On a parse
// error the stored document is left untouched.
func (s *Store) Replace(target docpart.Target, r io.Reader) (*Handle, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	part, err := texdoc.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := asDocument(target, part)

	var swapped *Handle
	err = s.withHandle(target, func(h *Handle) error {
		swapped = h
		return h.swap(doc)
	})
	if err != nil {
		return nil, err
	}
	return swapped, nil
}

// Delete drops target's document from the cache and from disk.
func (s *Store) Delete(target docpart.Target) error {
	if err := validateTarget(target); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.cache.Peek(target.ID()); ok {
		h.close()
		s.cache.Remove(target.ID())
	}
	err := os.Remove(s.path(target.ID()))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove document: %w", err)
	}
	return nil
}

// Close saves every modified open document.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, h := range s.cache.Values() {
		if err := h.saveIfModified(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) evicted(id string, h *Handle) {
	if err := h.saveIfModified(); err != nil {
		s.log.Error("save evicted document", "target", id, "error", err)
	}
	h.close()
}

func (s *Store) load(target docpart.Target) (*docpart.Document, error) {
	data, err := os.ReadFile(s.path(target.ID()))
	if errors.Is(err, os.ErrNotExist) {
		return texdoc.NewDocument(target, s.version), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	part, err := texdoc.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", target.ID(), err)
	}
	return asDocument(target, part), nil
}

func (s *Store) newHandle(target docpart.Target, doc *docpart.Document) *Handle {
	h := &Handle{
		target: target,
		path:   s.path(target.ID()),
		log:    s.log.With("target", target.ID()),
	}
	h.attach(doc)
	return h
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+Extension)
}

// asDocument makes part the content of a document for target. A parsed
// document is adopted as is.
func asDocument(target docpart.Target, part docpart.Part) *docpart.Document {
	doc, ok := part.(*docpart.Document)
	if !ok {
		doc = texdoc.NewDocument(target, part.Version())
		doc.AppendPart(part)
	}
	doc.SetTarget(target)
	doc.SetModified(false)
	return doc
}

func validateTarget(target docpart.Target) error {
	if target == nil {
		return fmt.Errorf("%w: no target", ErrInvalidTarget)
	}
	id := target.ID()
	if !validID.MatchString(id) || filepath.Base(id) != id || containsDotDot(id) {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, id)
	}
	return nil
}

func containsDotDot(id string) bool {
	for i := 0; i+1 < len(id); i++ {
		if id[i] == '.' && id[i+1] == '.' {
			return true
		}
	}
	return false
}

// ContentHash computes SHA-256 of data and returns the hex string.
func ContentHash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
