package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/store"
	"github.com/dgallion1/netdoc/internal/texdoc"
	"github.com/go-chi/chi/v5"
)

const texContentType = "application/x-tex; charset=utf-8"

// targetFrom builds the target named by the URL. The optional label query
// parameter becomes its display name.
func targetFrom(r *http.Request) store.FileTarget {
	return store.FileTarget{
		TargetID: chi.URLParam(r, "targetID"),
		Label:    r.URL.Query().Get("label"),
	}
}

func etag(data []byte) string {
	return `"` + store.ContentHash(data) + `"`
}

// handleGetDocument returns the TeX form of a target's document.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Export(targetFrom(r))
	if err != nil {
		s.storeError(w, err)
		return
	}

	tag := etag(data)
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", texContentType)
	w.Write(data)
}

// handlePutDocument replaces a target's document with the TeX body. With
// If-Match the replace only happens when the current document still has
// that ETag.
func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	target := targetFrom(r)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	if match := r.Header.Get("If-Match"); match != "" {
		current, err := s.store.Export(target)
		if err != nil {
			s.storeError(w, err)
			return
		}
		if etag(current) != match {
			jsonError(w, "document changed since it was read", http.StatusPreconditionFailed)
			return
		}
	}

	h, err := s.store.Replace(target, bytes.NewReader(data))
	if err != nil {
		s.storeError(w, err)
		return
	}
	saved, err := h.Bytes()
	if err != nil {
		s.storeError(w, err)
		return
	}

	var parts int
	h.Do(func(doc *docpart.Document) error {
		parts = doc.Len()
		return nil
	})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag(saved))
	json.NewEncoder(w).Encode(map[string]any{
		"target": h.Target().ID(),
		"parts":  parts,
		"etag":   etag(saved),
	})
}

// handleDeleteDocument removes a target's document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	target := targetFrom(r)
	if err := s.store.Delete(target); err != nil {
		s.storeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": target.ID()})
}

// handleSave writes a target's document to disk.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	target := targetFrom(r)
	if err := s.store.Save(target); err != nil {
		s.storeError(w, err)
		return
	}
	data, err := s.store.Export(target)
	if err != nil {
		s.storeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"target": target.ID(),
		"saved":  true,
		"etag":   etag(data),
	})
}

// storeError maps document errors to HTTP status codes.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	var pe *texdoc.ParseError
	switch {
	case errors.Is(err, store.ErrInvalidTarget):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &pe):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, docpart.ErrPartNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, docpart.ErrUnsupportedOperation),
		errors.Is(err, docpart.ErrModificationNotAllowed):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, texdoc.ErrUnwritable):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.Error("document operation failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
